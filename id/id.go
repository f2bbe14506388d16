// Package id issues the time-sortable run identifiers used by the journal.
package id

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"io"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// Generator hands out ULIDs that stay ordered even within one millisecond.
// It is safe for concurrent use.
type Generator struct {
	mu      sync.Mutex
	entropy io.Reader
}

// NewGenerator reads entropy from r. A nil r seeds a PRNG from crypto/rand.
func NewGenerator(r io.Reader) *Generator {
	if r == nil {
		var seed int64
		_ = binary.Read(cryptoRand.Reader, binary.LittleEndian, &seed)
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		r = rand.New(rand.NewSource(seed))
	}
	return &Generator{entropy: ulid.Monotonic(r, 0)}
}

// At returns a run id stamped with t.
func (g *Generator) At(t time.Time) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	id, err := ulid.New(ulid.Timestamp(t.UTC()), g.entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

var std = NewGenerator(nil)

// New returns a run id for the current time.
func New() string {
	return NewAt(time.Now())
}

// NewAt returns a run id stamped with t from the shared generator. It only
// fails if the monotonic entropy overflows within one millisecond.
func NewAt(t time.Time) string {
	s, err := std.At(t)
	if err != nil {
		panic(err)
	}
	return s
}

// Time extracts the timestamp from a run id.
func Time(s string) (time.Time, error) {
	id, err := ulid.ParseStrict(s)
	if err != nil {
		return time.Time{}, err
	}
	return ulid.Time(id.Time()).UTC(), nil
}
