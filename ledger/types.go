package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Kind classifies an input record.
type Kind int

const (
	Unknown Kind = iota
	Deposit
	Withdrawal
	Dispute
	Resolve
	Chargeback
)

var kindNames = map[Kind]string{
	Unknown:    "unknown",
	Deposit:    "deposit",
	Withdrawal: "withdrawal",
	Dispute:    "dispute",
	Resolve:    "resolve",
	Chargeback: "chargeback",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind maps the textual type column to a Kind. Names are matched
// exactly after trimming whitespace, so "Deposit" is Unknown. Unknown is not
// an error at decode time.
func ParseKind(s string) Kind {
	switch strings.TrimSpace(s) {
	case "deposit":
		return Deposit
	case "withdrawal":
		return Withdrawal
	case "dispute":
		return Dispute
	case "resolve":
		return Resolve
	case "chargeback":
		return Chargeback
	}
	return Unknown
}

// Status is the outcome of applying one record to a client.
type Status int

const (
	Success Status = iota
	InsufficientFunds
	InsufficientFundsForDispute
	NoTransactionToDispute
	NoDisputeToResolve
	NoDisputeToChargeBack
	AccountLockedTransactionBlocked
	InvalidTransaction
)

var statusNames = [...]string{
	Success:                         "success",
	InsufficientFunds:               "insufficient_funds",
	InsufficientFundsForDispute:     "insufficient_funds_for_dispute",
	NoTransactionToDispute:          "no_transaction_to_dispute",
	NoDisputeToResolve:              "no_dispute_to_resolve",
	NoDisputeToChargeBack:           "no_dispute_to_chargeback",
	AccountLockedTransactionBlocked: "account_locked",
	InvalidTransaction:              "invalid_transaction",
}

func (s Status) String() string {
	if s >= 0 && int(s) < len(statusNames) {
		return statusNames[s]
	}
	return "invalid_status"
}

// TxState tracks where a retained deposit or withdrawal is in the
// dispute lifecycle.
type TxState int

const (
	Cleared TxState = iota
	Disputed
	AttemptedDispute
	Resolved
	ChargedBack
)

func (s TxState) String() string {
	switch s {
	case Cleared:
		return "cleared"
	case Disputed:
		return "disputed"
	case AttemptedDispute:
		return "attempted_dispute"
	case Resolved:
		return "resolved"
	case ChargedBack:
		return "charged_back"
	}
	return "unknown"
}

// Record is one decoded input line.
type Record struct {
	Kind     Kind
	ClientID uint16
	TxID     uint32
	// Amount is only meaningful for deposits and withdrawals.
	Amount decimal.NullDecimal
	// Line is the 1-based source line, 0 when unknown.
	Line int
}

// Balance is one row of the final snapshot, already rounded for reporting.
type Balance struct {
	ClientID  uint16
	Available decimal.Decimal
	Held      decimal.Decimal
	Total     decimal.Decimal
	Locked    bool
}
