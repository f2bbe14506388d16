package ledger

import (
	"bytes"
	"context"
	"testing"

	"github.com/rustyeddy/txledger/logging"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func amt(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func TestApplyRoutesKinds(t *testing.T) {
	ctx := context.Background()
	c := NewClient(1)

	assert.Equal(t, Success, Apply(ctx, Record{Kind: Deposit, ClientID: 1, TxID: 1, Amount: amt("10")}, c))
	assert.Equal(t, Success, Apply(ctx, Record{Kind: Withdrawal, ClientID: 1, TxID: 2, Amount: amt("4")}, c))
	assertBalances(t, c, "6", "0", "6", false)

	// Dispute-family records ignore any amount they carry.
	assert.Equal(t, Success, Apply(ctx, Record{Kind: Dispute, ClientID: 1, TxID: 2, Amount: amt("999")}, c))
	assertBalances(t, c, "2", "4", "6", false)
	assert.Equal(t, Success, Apply(ctx, Record{Kind: Resolve, ClientID: 1, TxID: 2}, c))
	assert.Equal(t, Success, Apply(ctx, Record{Kind: Dispute, ClientID: 1, TxID: 2}, c))
	assert.Equal(t, Success, Apply(ctx, Record{Kind: Chargeback, ClientID: 1, TxID: 2}, c))
	assertBalances(t, c, "2", "0", "2", true)
}

func TestApplyMissingAmountIsZero(t *testing.T) {
	ctx := context.Background()
	c := NewClient(1)

	assert.Equal(t, Success, Apply(ctx, Record{Kind: Deposit, TxID: 1}, c))
	assert.Equal(t, Success, Apply(ctx, Record{Kind: Withdrawal, TxID: 2}, c))
	assertBalances(t, c, "0", "0", "0", false)

	rec, ok := c.Transaction(1)
	require.True(t, ok)
	assert.True(t, rec.Amount.IsZero())
}

func TestApplyUnknownKind(t *testing.T) {
	buf := &bytes.Buffer{}
	log, err := logging.NewWithWriter(buf, "info", "json")
	require.NoError(t, err)
	ctx := logging.WithContext(context.Background(), log)

	c := NewClient(4)
	c.Deposit(d("3"), 1)

	assert.Equal(t, InvalidTransaction, Apply(ctx, Record{Kind: Unknown, ClientID: 4, TxID: 7, Line: 12}, c))
	assertBalances(t, c, "3", "0", "3", false)
	assert.Contains(t, buf.String(), "unexpected transaction type")
	assert.Contains(t, buf.String(), `"line":12`)
}

func TestApplyLockedGuardComesFirst(t *testing.T) {
	ctx := context.Background()
	c := NewClient(1)
	c.Deposit(d("1"), 1)
	c.Dispute(1)
	c.Chargeback(1)

	assert.Equal(t, AccountLockedTransactionBlocked, Apply(ctx, Record{Kind: Unknown}, c))
	assert.Equal(t, AccountLockedTransactionBlocked, Apply(ctx, Record{Kind: Deposit, TxID: 2, Amount: amt("1")}, c))
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"deposit":      Deposit,
		" withdrawal ": Withdrawal,
		"dispute":      Dispute,
		"DISPUTE":      Unknown,
		"Deposit":      Unknown,
		"resolve":      Resolve,
		"chargeback":   Chargeback,
		"transfer":     Unknown,
		"":             Unknown,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseKind(in), "ParseKind(%q)", in)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "success", Success.String())
	assert.Equal(t, "account_locked", AccountLockedTransactionBlocked.String())
	assert.Equal(t, "invalid_status", Status(99).String())
}

func TestApplyRejectsNegativeAmounts(t *testing.T) {
	ctx := context.Background()
	c := NewClient(1)

	assert.Equal(t, InvalidTransaction, Apply(ctx, Record{Kind: Deposit, ClientID: 1, TxID: 1, Amount: amt("-50")}, c))
	assertBalances(t, c, "0", "0", "0", false)
	_, ok := c.Transaction(1)
	assert.False(t, ok, "refused deposit must not be retained")

	// Nothing to dispute, so no negative amount can be moved into held.
	assert.Equal(t, NoTransactionToDispute, Apply(ctx, Record{Kind: Dispute, ClientID: 1, TxID: 1}, c))

	assert.Equal(t, Success, Apply(ctx, Record{Kind: Deposit, ClientID: 1, TxID: 2, Amount: amt("10")}, c))
	assert.Equal(t, InvalidTransaction, Apply(ctx, Record{Kind: Withdrawal, ClientID: 1, TxID: 3, Amount: amt("-5")}, c))
	assertBalances(t, c, "10", "0", "10", false)
	_, ok = c.Transaction(3)
	assert.False(t, ok)
}
