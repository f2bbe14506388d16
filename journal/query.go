package journal

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// GetRun returns a single run by id.
func (j *SQLite) GetRun(runID string) (Run, error) {
	var r Run

	row := j.db.QueryRow(`
		SELECT run_id, source, started, finished, lines, applied, rejected, malformed, clients
		FROM runs
		WHERE run_id = ?`, runID)

	err := row.Scan(&r.RunID, &r.Source, &r.Started, &r.Finished,
		&r.Lines, &r.Applied, &r.Rejected, &r.Malformed, &r.Clients)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, fmt.Errorf("run %q not found", runID)
		}
		return Run{}, err
	}
	return r, nil
}

// ListRuns returns every recorded run, oldest first.
func (j *SQLite) ListRuns() ([]Run, error) {
	rows, err := j.db.Query(`
		SELECT run_id, source, started, finished, lines, applied, rejected, malformed, clients
		FROM runs
		ORDER BY run_id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.RunID, &r.Source, &r.Started, &r.Finished,
			&r.Lines, &r.Applied, &r.Rejected, &r.Malformed, &r.Clients); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListTransactions returns the journaled records of a run in input order.
func (j *SQLite) ListTransactions(runID string) ([]TxEntry, error) {
	rows, err := j.db.Query(`
		SELECT run_id, line, type, client, tx, amount, status, time
		FROM transactions
		WHERE run_id = ?
		ORDER BY line ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []TxEntry
	for rows.Next() {
		var (
			e      TxEntry
			amount decimal.NullDecimal
		)
		if err := rows.Scan(&e.RunID, &e.Line, &e.Kind, &e.ClientID, &e.TxID, &amount, &e.Status, &e.Time); err != nil {
			return nil, err
		}
		if amount.Valid {
			a := amount.Decimal
			e.Amount = &a
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListBalances returns the closing balances of a run by ascending client.
func (j *SQLite) ListBalances(runID string) ([]BalanceEntry, error) {
	rows, err := j.db.Query(`
		SELECT run_id, client, available, held, total, locked, time
		FROM balances
		WHERE run_id = ?
		ORDER BY client ASC`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BalanceEntry
	for rows.Next() {
		var e BalanceEntry
		if err := rows.Scan(&e.RunID, &e.ClientID, &e.Available, &e.Held, &e.Total, &e.Locked, &e.Time); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByStatus tallies a run's journaled records per status.
func (j *SQLite) CountByStatus(runID string) (map[string]int, error) {
	rows, err := j.db.Query(`
		SELECT status, COUNT(*)
		FROM transactions
		WHERE run_id = ?
		GROUP BY status`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := map[string]int{}
	for rows.Next() {
		var (
			status string
			n      int
		)
		if err := rows.Scan(&status, &n); err != nil {
			return nil, err
		}
		out[status] = n
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
