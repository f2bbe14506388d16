// Package journal keeps an audit trail of ledger runs: every record applied,
// its outcome, and the closing balances.
package journal

import (
	"time"

	"github.com/shopspring/decimal"
)

// TxEntry is one applied input record and its status.
type TxEntry struct {
	RunID    string
	Line     int
	Kind     string
	ClientID uint16
	TxID     uint32
	// Amount is nil for records that carry none.
	Amount *decimal.Decimal
	Status string
	Time   time.Time
}

// BalanceEntry is one client's closing balance for a run.
type BalanceEntry struct {
	RunID     string
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
	Time      time.Time
}

// Run summarizes one pass over an input source.
type Run struct {
	RunID     string
	Source    string
	Started   time.Time
	Finished  time.Time
	Lines     int
	Applied   int
	Rejected  int
	Malformed int
	Clients   int
}

type Journal interface {
	RecordTransaction(TxEntry) error
	RecordBalance(BalanceEntry) error
	RecordRun(Run) error
	Close() error
}

// Nop discards everything.
type Nop struct{}

func (Nop) RecordTransaction(TxEntry) error   { return nil }
func (Nop) RecordBalance(BalanceEntry) error { return nil }
func (Nop) RecordRun(Run) error              { return nil }
func (Nop) Close() error                     { return nil }
