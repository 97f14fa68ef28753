package service

import (
	"sync"

	"github.com/google/uuid"
	"github.com/smartinr/ventapos-api/internal/domain/entity"
)

// TicketRegistry holds the active ticket of each cashier in memory. A
// ticket only exists here until it is suspended or checked out; it is
// never persisted while being edited. All mutations of one cashier's
// ticket are serialized through a per-cashier lock.
type TicketRegistry struct {
	mu      sync.Mutex
	entries map[uuid.UUID]*registryEntry
}

type registryEntry struct {
	mu     sync.Mutex
	ticket *entity.Ticket
}

// NewTicketRegistry creates a new ticket registry
func NewTicketRegistry() *TicketRegistry {
	return &TicketRegistry{entries: make(map[uuid.UUID]*registryEntry)}
}

func (r *TicketRegistry) entry(userID uuid.UUID) *registryEntry {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.entries[userID]
	if !ok {
		e = &registryEntry{ticket: entity.NewTicket()}
		r.entries[userID] = e
	}
	return e
}

// WithTicket runs fn against the cashier's active ticket while holding
// its lock. An empty ticket is created on first use. fn may mutate the
// ticket in place, including replacing its whole contents.
func (r *TicketRegistry) WithTicket(userID uuid.UUID, fn func(t *entity.Ticket) error) error {
	e := r.entry(userID)
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.ticket)
}
