package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryFetchCreatesOnce(t *testing.T) {
	r := NewRegistry()
	_, ok := r.Lookup(3)
	assert.False(t, ok)

	c := r.Fetch(3)
	require.NotNil(t, c)
	assert.Equal(t, uint16(3), c.ID)
	assertBalances(t, c, "0", "0", "0", false)

	c.Deposit(d("1"), 1)
	assert.Same(t, c, r.Fetch(3))
	assert.Equal(t, 1, r.Len())
}

func TestRegistrySnapshotOrder(t *testing.T) {
	r := NewRegistry()
	for _, id := range []uint16{42, 7, 65535, 0, 8} {
		r.Fetch(id).Deposit(d("1.23456"), uint32(id))
	}

	snap := r.Snapshot()
	require.Len(t, snap, 5)

	var ids []uint16
	for _, b := range snap {
		ids = append(ids, b.ClientID)
		assert.True(t, d("1.2346").Equal(b.Available))
		assert.True(t, d("1.2346").Equal(b.Total))
	}
	assert.Equal(t, []uint16{0, 7, 8, 42, 65535}, ids)
}

func TestRegistrySnapshotEmpty(t *testing.T) {
	assert.Empty(t, NewRegistry().Snapshot())
}
