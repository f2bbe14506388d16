package journal

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "test.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table'`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["runs"])
	assert.True(t, found["transactions"])
	assert.True(t, found["balances"])
}

func TestSQLiteRoundTrip(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	ts := time.Date(2024, 2, 3, 4, 5, 6, 0, time.UTC)
	amt := decimal.RequireFromString("50.12345")

	entries := []TxEntry{
		{RunID: "R1", Line: 2, Kind: "deposit", ClientID: 1, TxID: 1, Amount: &amt, Status: "success", Time: ts},
		{RunID: "R1", Line: 3, Kind: "withdrawal", ClientID: 1, TxID: 2, Amount: &amt, Status: "insufficient_funds", Time: ts},
		{RunID: "R1", Line: 4, Kind: "dispute", ClientID: 1, TxID: 1, Status: "success", Time: ts},
		{RunID: "R2", Line: 2, Kind: "deposit", ClientID: 5, TxID: 1, Amount: &amt, Status: "success", Time: ts},
	}
	for _, e := range entries {
		require.NoError(t, j.RecordTransaction(e))
	}

	require.NoError(t, j.RecordBalance(BalanceEntry{
		RunID: "R1", ClientID: 1, Available: decimal.Zero, Held: amt, Total: amt, Time: ts,
	}))
	require.NoError(t, j.RecordRun(Run{
		RunID: "R1", Source: "in.csv", Started: ts, Finished: ts.Add(time.Second),
		Lines: 3, Applied: 2, Rejected: 1, Clients: 1,
	}))

	got, err := j.ListTransactions("R1")
	require.NoError(t, err)
	require.Len(t, got, 3)
	require.NotNil(t, got[0].Amount)
	assert.True(t, amt.Equal(*got[0].Amount))
	assert.Nil(t, got[2].Amount)
	assert.Equal(t, "dispute", got[2].Kind)
	assert.True(t, got[0].Time.Equal(ts))

	counts, err := j.CountByStatus("R1")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"success": 2, "insufficient_funds": 1}, counts)

	bals, err := j.ListBalances("R1")
	require.NoError(t, err)
	require.Len(t, bals, 1)
	assert.True(t, amt.Equal(bals[0].Held))
	assert.False(t, bals[0].Locked)

	run, err := j.GetRun("R1")
	require.NoError(t, err)
	assert.Equal(t, "in.csv", run.Source)
	assert.Equal(t, 2, run.Applied)

	runs, err := j.ListRuns()
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteGetRunMissing(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	t.Cleanup(func() { _ = j.Close() })

	_, err := j.GetRun("nope")
	assert.ErrorContains(t, err, "not found")
}
