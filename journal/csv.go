package journal

import (
	"encoding/csv"
	"errors"
	"os"
	"strconv"
	"time"

	"github.com/rustyeddy/txledger/money"
)

var (
	txHeader      = []string{"run_id", "line", "type", "client", "tx", "amount", "status", "time"}
	balanceHeader = []string{"run_id", "client", "available", "held", "total", "locked", "time"}
)

// CSVJournal writes transactions and balances to two CSV files. Runs are
// not recorded; the run id is repeated on every row instead.
type CSVJournal struct {
	txns     *csv.Writer
	balances *csv.Writer
	tf, bf   *os.File
}

func NewCSV(txPath, balancePath string) (*CSVJournal, error) {
	tf, err := os.Create(txPath)
	if err != nil {
		return nil, err
	}
	bf, err := os.Create(balancePath)
	if err != nil {
		tf.Close()
		return nil, err
	}

	j := &CSVJournal{
		txns:     csv.NewWriter(tf),
		balances: csv.NewWriter(bf),
		tf:       tf,
		bf:       bf,
	}

	if err := j.writeHeaders(); err != nil {
		return nil, errors.Join(err, j.closeFiles())
	}
	return j, nil
}

func (j *CSVJournal) writeHeaders() error {
	if err := j.txns.Write(txHeader); err != nil {
		return err
	}
	if err := j.balances.Write(balanceHeader); err != nil {
		return err
	}
	j.txns.Flush()
	if err := j.txns.Error(); err != nil {
		return err
	}
	j.balances.Flush()
	return j.balances.Error()
}

func (j *CSVJournal) RecordTransaction(e TxEntry) error {
	amount := ""
	if e.Amount != nil {
		amount = e.Amount.String()
	}
	err := j.txns.Write([]string{
		e.RunID,
		strconv.Itoa(e.Line),
		e.Kind,
		strconv.FormatUint(uint64(e.ClientID), 10),
		strconv.FormatUint(uint64(e.TxID), 10),
		amount,
		e.Status,
		e.Time.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	j.txns.Flush()
	return j.txns.Error()
}

func (j *CSVJournal) RecordBalance(e BalanceEntry) error {
	err := j.balances.Write([]string{
		e.RunID,
		strconv.FormatUint(uint64(e.ClientID), 10),
		money.Format(e.Available),
		money.Format(e.Held),
		money.Format(e.Total),
		strconv.FormatBool(e.Locked),
		e.Time.UTC().Format(time.RFC3339Nano),
	})
	if err != nil {
		return err
	}
	j.balances.Flush()
	return j.balances.Error()
}

func (j *CSVJournal) RecordRun(Run) error {
	return nil
}

// Close flushes both writers and closes both files, even when an earlier
// step fails.
func (j *CSVJournal) Close() error {
	j.txns.Flush()
	j.balances.Flush()
	return errors.Join(j.txns.Error(), j.balances.Error(), j.closeFiles())
}

func (j *CSVJournal) closeFiles() error {
	return errors.Join(j.tf.Close(), j.bf.Close())
}
