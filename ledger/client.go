package ledger

import (
	"github.com/shopspring/decimal"
)

// TxRecord is the retained state of an applied deposit or withdrawal.
// Disputes, resolves and chargebacks carry no amount of their own and read
// it from here.
type TxRecord struct {
	Amount decimal.Decimal
	State  TxState
}

// Client owns an Account and the log of its deposits and withdrawals.
// Entries in the log are never removed.
type Client struct {
	ID      uint16
	Account Account
	txns    map[uint32]*TxRecord
}

func NewClient(id uint16) *Client {
	return &Client{
		ID:   id,
		txns: make(map[uint32]*TxRecord),
	}
}

// Transaction returns a copy of the retained state for txID.
func (c *Client) Transaction(txID uint32) (TxRecord, bool) {
	rec, ok := c.txns[txID]
	if !ok {
		return TxRecord{}, false
	}
	return *rec, true
}

// Deposit credits amount to available and total. A repeated txID overwrites
// the retained state for that id. Negative amounts are refused.
func (c *Client) Deposit(amount decimal.Decimal, txID uint32) Status {
	if c.Account.locked {
		return AccountLockedTransactionBlocked
	}
	if amount.IsNegative() {
		return InvalidTransaction
	}
	c.txns[txID] = &TxRecord{Amount: amount, State: Cleared}
	c.Account.available = c.Account.available.Add(amount)
	c.Account.total = c.Account.total.Add(amount)
	return Success
}

// Withdraw debits amount when the available funds cover it. Negative
// amounts are refused.
func (c *Client) Withdraw(amount decimal.Decimal, txID uint32) Status {
	if c.Account.locked {
		return AccountLockedTransactionBlocked
	}
	if amount.IsNegative() {
		return InvalidTransaction
	}
	if c.Account.available.LessThan(amount) {
		return InsufficientFunds
	}
	c.Account.available = c.Account.available.Sub(amount)
	c.Account.total = c.Account.total.Sub(amount)
	c.txns[txID] = &TxRecord{Amount: amount, State: Cleared}
	return Success
}

// Dispute moves the amount of txID from available to held. When available
// cannot cover it the account is locked instead and nothing moves.
func (c *Client) Dispute(txID uint32) Status {
	if c.Account.locked {
		return AccountLockedTransactionBlocked
	}
	rec, ok := c.txns[txID]
	if !ok {
		return NoTransactionToDispute
	}

	if c.Account.available.LessThan(rec.Amount) {
		rec.State = AttemptedDispute
		c.Account.locked = true
		return InsufficientFundsForDispute
	}

	c.Account.available = c.Account.available.Sub(rec.Amount)
	c.Account.held = c.Account.held.Add(rec.Amount)
	rec.State = Disputed
	return Success
}

// Resolve releases a disputed amount back to available.
func (c *Client) Resolve(txID uint32) Status {
	if c.Account.locked {
		return AccountLockedTransactionBlocked
	}
	rec := c.disputed(txID)
	if rec == nil {
		return NoDisputeToResolve
	}

	c.Account.available = c.Account.available.Add(rec.Amount)
	c.Account.held = c.Account.held.Sub(rec.Amount)
	rec.State = Resolved
	return Success
}

// Chargeback removes a disputed amount from the account and locks it.
func (c *Client) Chargeback(txID uint32) Status {
	if c.Account.locked {
		return AccountLockedTransactionBlocked
	}
	rec := c.disputed(txID)
	if rec == nil {
		return NoDisputeToChargeBack
	}

	c.Account.held = c.Account.held.Sub(rec.Amount)
	c.Account.total = c.Account.total.Sub(rec.Amount)
	c.Account.locked = true
	rec.State = ChargedBack
	return Success
}

func (c *Client) disputed(txID uint32) *TxRecord {
	rec, ok := c.txns[txID]
	if !ok || rec.State != Disputed {
		return nil
	}
	return rec
}

// Balance returns the client's row of the report.
func (c *Client) Balance() Balance {
	return Balance{
		ClientID:  c.ID,
		Available: c.Account.Available(),
		Held:      c.Account.Held(),
		Total:     c.Account.Total(),
		Locked:    c.Account.Locked(),
	}
}
