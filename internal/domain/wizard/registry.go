package wizard

import (
	"sync"

	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
)

// Registry keeps one wizard per session.
type Registry struct {
	mu      sync.Mutex
	catalog []appointment.Slot
	items   map[string]*Wizard
}

func NewRegistry(catalog []appointment.Slot) *Registry {
	return &Registry{
		catalog: catalog,
		items:   make(map[string]*Wizard),
	}
}

// Get returns the session's wizard, starting one if none exists.
func (r *Registry) Get(sessionID string) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.items[sessionID]
	if !ok {
		w = New(r.catalog)
		r.items[sessionID] = w
	}
	return w
}

// Reset replaces the session's wizard with a fresh one.
func (r *Registry) Reset(sessionID string) *Wizard {
	r.mu.Lock()
	defer r.mu.Unlock()

	w := New(r.catalog)
	r.items[sessionID] = w
	return w
}

func (r *Registry) Drop(sessionID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, sessionID)
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}
