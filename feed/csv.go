// Package feed decodes transaction records from CSV input.
package feed

import (
	"bufio"
	"compress/gzip"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rustyeddy/txledger/ledger"
	"github.com/rustyeddy/txledger/money"
	"github.com/shopspring/decimal"
	"github.com/ulikunitz/xz"
)

// Options control how strictly lines are decoded.
type Options struct {
	// StrictAmounts rejects deposits and withdrawals whose amount is
	// missing or negative instead of applying them.
	StrictAmounts bool
}

// CSVFeed reads type,client,tx,amount rows. It implements ledger.Source.
type CSVFeed struct {
	r      *csv.Reader
	closer []io.Closer
	opts   Options

	sawFirst bool
}

// Open opens path for reading. Files ending in .gz or .xz are decompressed.
func Open(path string, opts Options) (*CSVFeed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	var r io.Reader = f
	closers := []io.Closer{f}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		r = zr
		closers = append([]io.Closer{zr}, closers...)
	case ".xz":
		xr, err := xz.NewReader(bufio.NewReader(f))
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		r = xr
	}

	feed := NewCSV(r, opts)
	feed.closer = closers
	return feed, nil
}

// NewCSV decodes rows from r. A leading header row is skipped.
func NewCSV(r io.Reader, opts Options) *CSVFeed {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &CSVFeed{r: cr, opts: opts}
}

func (f *CSVFeed) Close() error {
	var errs []error
	for _, c := range f.closer {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Next returns the next record. Errors for a single bad line wrap
// ledger.ErrMalformedRecord; reading may continue after them.
func (f *CSVFeed) Next() (ledger.Record, bool, error) {
	for {
		row, err := f.r.Read()
		if err == io.EOF {
			return ledger.Record{}, false, nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return ledger.Record{}, false, fmt.Errorf("%w: %v", ledger.ErrMalformedRecord, perr)
			}
			return ledger.Record{}, false, err
		}

		line, _ := f.r.FieldPos(0)
		if isBlank(row) {
			continue
		}

		if !f.sawFirst {
			f.sawFirst = true
			if strings.EqualFold(strings.TrimSpace(row[0]), "type") {
				continue
			}
		}

		rec, err := f.decode(row)
		if err != nil {
			return ledger.Record{}, false, fmt.Errorf("line %d: %w: %v", line, ledger.ErrMalformedRecord, err)
		}
		rec.Line = line
		return rec, true, nil
	}
}

func (f *CSVFeed) decode(row []string) (ledger.Record, error) {
	if len(row) < 3 || len(row) > 4 {
		return ledger.Record{}, fmt.Errorf("expected 3 or 4 columns, got %d", len(row))
	}

	kind := ledger.ParseKind(row[0])

	client, err := strconv.ParseUint(strings.TrimSpace(row[1]), 10, 16)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("bad client %q: %w", row[1], err)
	}
	tx, err := strconv.ParseUint(strings.TrimSpace(row[2]), 10, 32)
	if err != nil {
		return ledger.Record{}, fmt.Errorf("bad tx %q: %w", row[2], err)
	}

	rec := ledger.Record{Kind: kind, ClientID: uint16(client), TxID: uint32(tx)}

	if len(row) == 4 && strings.TrimSpace(row[3]) != "" {
		a, err := money.Parse(row[3])
		if err != nil {
			return ledger.Record{}, err
		}
		rec.Amount = decimal.NewNullDecimal(a)
	}

	if f.opts.StrictAmounts && (kind == ledger.Deposit || kind == ledger.Withdrawal) {
		if !rec.Amount.Valid {
			return ledger.Record{}, fmt.Errorf("%s without amount", kind)
		}
		if rec.Amount.Decimal.IsNegative() {
			return ledger.Record{}, fmt.Errorf("%s with negative amount %s", kind, rec.Amount.Decimal)
		}
	}
	return rec, nil
}

func isBlank(row []string) bool {
	for _, s := range row {
		if strings.TrimSpace(s) != "" {
			return false
		}
	}
	return true
}
