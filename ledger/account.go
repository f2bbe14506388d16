package ledger

import (
	"github.com/rustyeddy/txledger/money"
	"github.com/shopspring/decimal"
)

// Account holds one client's balances at full precision. It is mutated only
// by the owning Client's transaction methods.
type Account struct {
	available decimal.Decimal
	held      decimal.Decimal
	total     decimal.Decimal
	locked    bool
}

// Available returns the available funds rounded for reporting.
func (a *Account) Available() decimal.Decimal {
	return money.Round(a.available, money.ReportDigits)
}

// Held returns the funds held by open disputes, rounded for reporting.
func (a *Account) Held() decimal.Decimal {
	return money.Round(a.held, money.ReportDigits)
}

// Total returns available + held, rounded for reporting.
func (a *Account) Total() decimal.Decimal {
	return money.Round(a.total, money.ReportDigits)
}

func (a *Account) Locked() bool {
	return a.locked
}
