// Package signalstore persists the last-observed signal per symbol and
// the daily-digest bookkeeping the driver needs to decide when a report
// is due (spec §6's signal-store boundary).
//
// Grounded in the teacher's portfolio/storage.FileStorage: the same
// marshal-to-temp-file-then-atomic-rename persistence shape, narrowed
// from the teacher's full PortfolioState to the small per-symbol
// action/sent-flag map spec §6 describes.
package signalstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Action mirrors the Signal values the scorer emits, plus Any — the
// sentinel spec §6 defines for "never observed".
type Action string

const (
	ActionHold   Action = "Hold"
	ActionBuy    Action = "Buy"
	ActionSell   Action = "Sell"
	ActionDcaBuy Action = "DcaBuy"
	ActionDcaSell Action = "DcaSell"
	ActionAny    Action = "Any"
)

// Entry is the persisted state for one symbol.
type Entry struct {
	Action   Action `json:"action"`
	SentFlag bool   `json:"sent_flag"`
}

type document struct {
	Signals         map[string]Entry `json:"signals"`
	LastReportDate  string           `json:"last_report_date"`
	ReportSentToday bool             `json:"report_sent_today"`
}

// Store is a file-backed key/value store for signal state. Safe for
// concurrent use.
type Store struct {
	mu       sync.RWMutex
	filePath string
	doc      document
}

// Open loads filePath if it exists, or starts from an empty document.
func Open(filePath string) (*Store, error) {
	if filePath == "" {
		filePath = "signal_store.json"
	}
	if dir := filepath.Dir(filePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create signal store directory: %w", err)
		}
	}

	s := &Store{filePath: filePath, doc: document{Signals: make(map[string]Entry)}}

	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("read signal store: %w", err)
	}
	if err := json.Unmarshal(data, &s.doc); err != nil {
		return nil, fmt.Errorf("parse signal store: %w", err)
	}
	if s.doc.Signals == nil {
		s.doc.Signals = make(map[string]Entry)
	}
	return s, nil
}

// Get returns the last recorded action and sent flag for symbol. ActionAny
// and false are returned when the symbol was never observed.
func (s *Store) Get(symbol string) (Action, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.doc.Signals[symbol]
	if !ok {
		return ActionAny, false
	}
	return entry.Action, entry.SentFlag
}

// Set records symbol's action and sent flag, then persists the whole
// document atomically.
func (s *Store) Set(symbol string, action Action, sentFlag bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.Signals[symbol] = Entry{Action: action, SentFlag: sentFlag}
	return s.save()
}

// ReportState returns the last report date (ISO-8601, empty if never set)
// and whether today's digest has already been sent.
func (s *Store) ReportState() (lastReportDate string, sentToday bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.doc.LastReportDate, s.doc.ReportSentToday
}

// SetReportState updates the daily-digest bookkeeping and persists it.
func (s *Store) SetReportState(lastReportDate string, sentToday bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.doc.LastReportDate = lastReportDate
	s.doc.ReportSentToday = sentToday
	return s.save()
}

// save marshals the document and rewrites filePath via a temp-file
// rename, so a crash mid-write never leaves a truncated store behind.
func (s *Store) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal signal store: %w", err)
	}

	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write temp signal store: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("commit signal store: %w", err)
	}
	return nil
}
