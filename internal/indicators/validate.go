package indicators

import (
	coreerrors "github.com/bvantuan/dca-signal-engine/internal/errors"
	"github.com/bvantuan/dca-signal-engine/pkg/types"
)

// ValidateInput checks the OHLCV shape invariants of spec §3 before a
// caller feeds the series to Compute, surfacing spec §7's InputShape
// error kind. Compute itself never validates: non-finite values are
// expected to propagate as nulls through rolling ops (spec §4.1), which
// only holds once the shape is already known to be sound.
func ValidateInput(data []types.OHLCV) error {
	if err := types.ValidateSeries(data); err != nil {
		return coreerrors.NewInputShapeError("indicators", "ValidateInput", err.Error())
	}
	return nil
}
