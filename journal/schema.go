package journal

// Amounts are stored as TEXT to keep full decimal precision.
const Schema = `
CREATE TABLE IF NOT EXISTS runs (
	run_id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	started DATETIME NOT NULL,
	finished DATETIME NOT NULL,
	lines INTEGER NOT NULL,
	applied INTEGER NOT NULL,
	rejected INTEGER NOT NULL,
	malformed INTEGER NOT NULL,
	clients INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS transactions (
	run_id TEXT NOT NULL,
	line INTEGER NOT NULL,
	type TEXT NOT NULL,
	client INTEGER NOT NULL,
	tx INTEGER NOT NULL,
	amount TEXT,
	status TEXT NOT NULL,
	time DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS balances (
	run_id TEXT NOT NULL,
	client INTEGER NOT NULL,
	available TEXT NOT NULL,
	held TEXT NOT NULL,
	total TEXT NOT NULL,
	locked BOOLEAN NOT NULL,
	time DATETIME NOT NULL,
	PRIMARY KEY (run_id, client)
);

CREATE INDEX IF NOT EXISTS idx_transactions_run ON transactions(run_id, line);
`
