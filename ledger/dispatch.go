package ledger

import (
	"context"

	"github.com/rustyeddy/txledger/logging"
	"github.com/shopspring/decimal"
)

// Apply routes rec to the matching Client method. Records against a locked
// account are refused before the kind is looked at. A deposit or withdrawal
// without an amount is applied as zero; one with a negative amount is
// InvalidTransaction.
func Apply(ctx context.Context, rec Record, c *Client) Status {
	if c.Account.Locked() {
		return AccountLockedTransactionBlocked
	}

	switch rec.Kind {
	case Deposit:
		return c.Deposit(amountOrZero(rec.Amount), rec.TxID)
	case Withdrawal:
		return c.Withdraw(amountOrZero(rec.Amount), rec.TxID)
	case Dispute:
		return c.Dispute(rec.TxID)
	case Resolve:
		return c.Resolve(rec.TxID)
	case Chargeback:
		return c.Chargeback(rec.TxID)
	case Unknown:
		fallthrough
	default:
		log := logging.FromContext(ctx)
		log.Warn().
			Int("line", rec.Line).
			Uint16("client", rec.ClientID).
			Uint32("tx", rec.TxID).
			Msg("unexpected transaction type")
		return InvalidTransaction
	}
}

func amountOrZero(a decimal.NullDecimal) decimal.Decimal {
	if !a.Valid {
		return decimal.Zero
	}
	return a.Decimal
}
