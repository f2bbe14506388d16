package ledger

import (
	"slices"
)

// Registry maps client ids to clients, creating them on first reference.
type Registry struct {
	clients map[uint16]*Client
}

func NewRegistry() *Registry {
	return &Registry{clients: make(map[uint16]*Client)}
}

// Fetch returns the client for id, creating a zeroed one if needed.
func (r *Registry) Fetch(id uint16) *Client {
	c, ok := r.clients[id]
	if !ok {
		c = NewClient(id)
		r.clients[id] = c
	}
	return c
}

// Lookup returns the client for id without creating it.
func (r *Registry) Lookup(id uint16) (*Client, bool) {
	c, ok := r.clients[id]
	return c, ok
}

func (r *Registry) Len() int {
	return len(r.clients)
}

// Snapshot returns every client's balances ordered by ascending client id.
func (r *Registry) Snapshot() []Balance {
	ids := make([]uint16, 0, len(r.clients))
	for id := range r.clients {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]Balance, 0, len(ids))
	for _, id := range ids {
		out = append(out, r.clients[id].Balance())
	}
	return out
}
