package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rustyeddy/txledger/id"
	"github.com/rustyeddy/txledger/journal"
	"github.com/rustyeddy/txledger/logging"
)

var (
	// ErrNothingProcessed is returned when a run ends without a single client.
	ErrNothingProcessed = errors.New("nothing processed")
	// ErrMalformedRecord marks a source error confined to one input line.
	// The engine logs it and moves on to the next line.
	ErrMalformedRecord = errors.New("malformed record")
)

// Source yields decoded records in input order. ok is false once the source
// is exhausted.
type Source interface {
	Next() (rec Record, ok bool, err error)
}

// Summary counts what happened during one Process call.
type Summary struct {
	RunID     string
	Lines     int
	Applied   int
	Rejected  int
	Malformed int
	Statuses  map[Status]int
}

// Engine drives records through the registry strictly in input order.
type Engine struct {
	registry *Registry
	journal  journal.Journal
	source   string
	now      func() time.Time
}

type Option func(*Engine)

// WithJournal sends every applied record and the closing balances to j.
func WithJournal(j journal.Journal) Option {
	return func(e *Engine) { e.journal = j }
}

// WithSourceName labels journaled runs.
func WithSourceName(name string) Option {
	return func(e *Engine) { e.source = name }
}

// WithClock replaces time.Now for journal timestamps.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		registry: NewRegistry(),
		journal:  journal.Nop{},
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Engine) Registry() *Registry {
	return e.registry
}

// Snapshot returns the current balances of every client.
func (e *Engine) Snapshot() []Balance {
	return e.registry.Snapshot()
}

// Process applies every record from src. Business-rule failures are counted
// and logged but never stop the run. Malformed lines are skipped. Any other
// source error aborts the run.
func (e *Engine) Process(ctx context.Context, src Source) (Summary, error) {
	log := logging.FromContext(ctx)
	started := e.now()
	sum := Summary{
		RunID:    id.NewAt(started),
		Statuses: map[Status]int{},
	}
	log = log.With().Str("run", sum.RunID).Logger()
	ctx = logging.WithContext(ctx, log)

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}

		rec, ok, err := src.Next()
		if err != nil {
			if errors.Is(err, ErrMalformedRecord) {
				sum.Lines++
				sum.Malformed++
				log.Warn().Err(err).Msg("skipping line")
				continue
			}
			return sum, fmt.Errorf("read records: %w", err)
		}
		if !ok {
			break
		}
		sum.Lines++

		client := e.registry.Fetch(rec.ClientID)
		status := Apply(ctx, rec, client)

		sum.Statuses[status]++
		if status == Success {
			sum.Applied++
			log.Debug().Int("line", rec.Line).Str("type", rec.Kind.String()).
				Uint16("client", rec.ClientID).Uint32("tx", rec.TxID).Msg("applied")
		} else {
			sum.Rejected++
			log.Warn().Int("line", rec.Line).Str("type", rec.Kind.String()).
				Uint16("client", rec.ClientID).Uint32("tx", rec.TxID).
				Str("status", status.String()).Msg("rejected")
		}

		if err := e.journal.RecordTransaction(txEntry(sum.RunID, rec, status, e.now())); err != nil {
			return sum, fmt.Errorf("journal transaction: %w", err)
		}
	}

	if e.registry.Len() == 0 {
		return sum, ErrNothingProcessed
	}

	finished := e.now()
	for _, b := range e.registry.Snapshot() {
		err := e.journal.RecordBalance(journal.BalanceEntry{
			RunID:     sum.RunID,
			ClientID:  b.ClientID,
			Available: b.Available,
			Held:      b.Held,
			Total:     b.Total,
			Locked:    b.Locked,
			Time:      finished,
		})
		if err != nil {
			return sum, fmt.Errorf("journal balance: %w", err)
		}
	}

	err := e.journal.RecordRun(journal.Run{
		RunID:     sum.RunID,
		Source:    e.source,
		Started:   started,
		Finished:  finished,
		Lines:     sum.Lines,
		Applied:   sum.Applied,
		Rejected:  sum.Rejected,
		Malformed: sum.Malformed,
		Clients:   e.registry.Len(),
	})
	if err != nil {
		return sum, fmt.Errorf("journal run: %w", err)
	}

	log.Info().Int("lines", sum.Lines).Int("applied", sum.Applied).
		Int("rejected", sum.Rejected).Int("malformed", sum.Malformed).
		Int("clients", e.registry.Len()).Msg("run complete")
	return sum, nil
}

func txEntry(runID string, rec Record, status Status, t time.Time) journal.TxEntry {
	e := journal.TxEntry{
		RunID:    runID,
		Line:     rec.Line,
		Kind:     rec.Kind.String(),
		ClientID: rec.ClientID,
		TxID:     rec.TxID,
		Status:   status.String(),
		Time:     t,
	}
	if rec.Amount.Valid {
		a := rec.Amount.Decimal
		e.Amount = &a
	}
	return e
}
