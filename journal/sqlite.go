package journal

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
)

type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

func (j *SQLite) RecordTransaction(e TxEntry) error {
	var amount any
	if e.Amount != nil {
		amount = e.Amount.String()
	}
	_, err := j.db.Exec(`
		INSERT INTO transactions
		(run_id, line, type, client, tx, amount, status, time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.Line, e.Kind, e.ClientID, e.TxID, amount, e.Status, e.Time.UTC(),
	)
	return err
}

func (j *SQLite) RecordBalance(e BalanceEntry) error {
	_, err := j.db.Exec(`
		INSERT INTO balances
		(run_id, client, available, held, total, locked, time)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.RunID, e.ClientID, e.Available.String(), e.Held.String(), e.Total.String(), e.Locked, e.Time.UTC(),
	)
	return err
}

func (j *SQLite) RecordRun(r Run) error {
	_, err := j.db.Exec(`
		INSERT INTO runs
		(run_id, source, started, finished, lines, applied, rejected, malformed, clients)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.RunID, r.Source, r.Started.UTC(), r.Finished.UTC(),
		r.Lines, r.Applied, r.Rejected, r.Malformed, r.Clients,
	)
	return err
}

func (j *SQLite) Close() error {
	return j.db.Close()
}
