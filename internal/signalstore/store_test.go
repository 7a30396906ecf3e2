package signalstore

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MissingFileStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path)
	require.NoError(t, err)

	action, sent := s.Get("BTC")
	assert.Equal(t, ActionAny, action)
	assert.False(t, sent)
}

func TestSetThenReopen_PersistsAcrossLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	s, err := Open(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("ETH", ActionBuy, true))
	require.NoError(t, s.SetReportState("2026-08-01", true))

	reopened, err := Open(path)
	require.NoError(t, err)

	action, sent := reopened.Get("ETH")
	assert.Equal(t, ActionBuy, action)
	assert.True(t, sent)

	date, sentToday := reopened.ReportState()
	assert.Equal(t, "2026-08-01", date)
	assert.True(t, sentToday)
}
