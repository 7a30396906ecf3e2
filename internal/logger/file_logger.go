// Package logger provides the per-run file logger used by the driver and,
// optionally, by long analytics batches. Adapted from the teacher's
// internal/logger/file_logger.go: a leveled, mutex-guarded log.Logger
// writing to a daily per-symbol file.
package logger

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"
)

type Logger struct {
	symbol  string
	logFile *os.File
	logger  *log.Logger
	mu      sync.Mutex
	logDir  string
}

// LogLevel names the kinds of entries the signal engine emits.
type LogLevel string

const (
	LogLevelInfo      LogLevel = "INFO"
	LogLevelWarning   LogLevel = "WARN"
	LogLevelError     LogLevel = "ERROR"
	LogLevelSignal    LogLevel = "SIGNAL"
	LogLevelTrade     LogLevel = "TRADE"
	LogLevelDCA       LogLevel = "DCA"
	LogLevelAnalytics LogLevel = "ANALYTICS"
)

// NewLogger creates a new file logger for the given symbol, writing under
// ./logs/<symbol>_<date>.log.
func NewLogger(symbol string) (*Logger, error) {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	filename := fmt.Sprintf("%s_%s.log", symbol, timestamp)
	logPath := filepath.Join(logDir, filename)

	file, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}

	l := &Logger{
		symbol:  symbol,
		logFile: file,
		logger:  log.New(file, "", 0),
		logDir:  logDir,
	}
	l.writeSessionHeader()
	return l, nil
}

func (l *Logger) writeSessionHeader() {
	l.mu.Lock()
	defer l.mu.Unlock()

	header := fmt.Sprintf(`
================================================================================
SIGNAL ENGINE RUN STARTED
================================================================================
Symbol: %s
Started: %s
================================================================================
`, l.symbol, time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Print(header)
}

// Log writes a single formatted entry at the given level.
func (l *Logger) Log(level LogLevel, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	message := fmt.Sprintf(format, args...)
	l.logger.Println(fmt.Sprintf("[%s] [%s] %s", timestamp, level, message))
}

func (l *Logger) Info(format string, args ...interface{})    { l.Log(LogLevelInfo, format, args...) }
func (l *Logger) Warning(format string, args ...interface{}) { l.Log(LogLevelWarning, format, args...) }
func (l *Logger) Error(format string, args ...interface{})   { l.Log(LogLevelError, format, args...) }

// LogError logs an error with a short context prefix.
func (l *Logger) LogError(context string, err error) {
	l.Error("%s: %v", context, err)
}

// LogSignal records the signal emitted for a symbol at a given price.
func (l *Logger) LogSignal(symbol, signal string, price float64, buyScore, sellScore float64) {
	l.Log(LogLevelSignal, "%s -> %s @ $%.2f (buy_score=%.1f sell_score=%.1f)", symbol, signal, price, buyScore, sellScore)
}

// LogTrade records a simulator trade event.
func (l *Logger) LogTrade(kind string, timestamp time.Time, price, amount float64) {
	l.Log(LogLevelTrade, "%s %.6f @ $%.2f on %s", kind, amount, price, timestamp.Format("2006-01-02"))
}

// LogDCA records a DCA-specific decision, including the computed score.
func (l *Logger) LogDCA(action string, score float64, price, avgPrice float64) {
	l.Log(LogLevelDCA, "%s score=%.1f price=$%.2f avg_price=$%.2f", action, score, price, avgPrice)
}

// LogDigest records the one-line summary of a cross-asset analytics batch.
func (l *Logger) LogDigest(symbols int, avgROI float64) {
	l.Log(LogLevelAnalytics, "digest: %d symbols, avg ROI %.2f%%", symbols, avgROI)
}

// Close writes a session footer and closes the underlying file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.logFile == nil {
		return nil
	}
	footer := fmt.Sprintf(`
================================================================================
SIGNAL ENGINE RUN ENDED
================================================================================
Ended: %s
================================================================================

`, time.Now().Format("2006-01-02 15:04:05"))
	l.logger.Print(footer)
	return l.logFile.Close()
}
