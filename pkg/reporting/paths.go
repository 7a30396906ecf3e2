package reporting

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultPathManager mirrors the teacher's path manager: it derives an
// output directory from symbol/date instead of symbol/interval.
type DefaultPathManager struct{}

func NewDefaultPathManager() *DefaultPathManager {
	return &DefaultPathManager{}
}

// GetDefaultOutputDir returns the default report directory for a symbol
// on a given report date (YYYY-MM-DD).
func (p *DefaultPathManager) GetDefaultOutputDir(symbol, reportDate string) string {
	s := strings.ToUpper(strings.TrimSpace(symbol))
	d := strings.TrimSpace(reportDate)
	if s == "" {
		s = "UNKNOWN"
	}
	if d == "" {
		d = "unknown-date"
	}
	return filepath.Join("reports", fmt.Sprintf("%s_%s", s, d))
}

func (p *DefaultPathManager) EnsureDirectoryExists(path string) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		return os.MkdirAll(dir, 0755)
	}
	return nil
}

// DefaultOutputDir is the package-level convenience form used by callers
// that don't need a PathManager instance.
func DefaultOutputDir(symbol, reportDate string) string {
	return NewDefaultPathManager().GetDefaultOutputDir(symbol, reportDate)
}
