// Package memory is the demo backend: an in-process stand-in for the
// customer and booking services, used when BACKEND_MODE=demo.
package memory

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/remote"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

type Store struct {
	mu        sync.RWMutex
	customers map[string]models.Customer
	bookings  map[string]models.Appointment
	order     []string
}

func New() *Store {
	return &Store{
		customers: make(map[string]models.Customer),
		bookings:  make(map[string]models.Appointment),
	}
}

// Seeded returns a store holding the demo customers and bookings.
func Seeded() *Store {
	s := New()
	for _, c := range demoCustomers {
		s.customers[c.ID] = c
	}
	for _, b := range demoBookings {
		s.bookings[b.ID] = b
		s.order = append(s.order, b.ID)
	}
	return s
}

func (s *Store) Customers() *Customers { return &Customers{s: s} }
func (s *Store) Bookings() *Bookings   { return &Bookings{s: s} }

func notFound(what string) error {
	return &remote.RejectionError{Status: http.StatusNotFound, Message: what + " not found"}
}

// ======================================================
// CUSTOMERS
// ======================================================

type Customers struct {
	s *Store
}

var _ domain.CustomerRepository = (*Customers)(nil)

func (c *Customers) List(ctx context.Context) ([]models.Customer, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	out := make([]models.Customer, 0, len(c.s.customers))
	for _, cu := range c.s.customers {
		out = append(out, cu)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (c *Customers) GetByID(ctx context.Context, id string) (models.Customer, error) {
	c.s.mu.RLock()
	defer c.s.mu.RUnlock()

	cu, ok := c.s.customers[id]
	if !ok {
		return models.Customer{}, notFound("Customer")
	}
	return cu, nil
}

func (c *Customers) Create(ctx context.Context, name, email string) (string, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	id := uuid.NewString()
	c.s.customers[id] = models.Customer{ID: id, Name: name, Email: email}
	return id, nil
}

func (c *Customers) Update(ctx context.Context, id string, patch models.CustomerPatch) (models.Customer, error) {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	cu, ok := c.s.customers[id]
	if !ok {
		return models.Customer{}, notFound("Customer")
	}
	if patch.Name != nil {
		cu.Name = *patch.Name
	}
	if patch.Email != nil {
		cu.Email = *patch.Email
	}
	c.s.customers[id] = cu
	return cu, nil
}

func (c *Customers) Delete(ctx context.Context, id string) error {
	c.s.mu.Lock()
	defer c.s.mu.Unlock()

	if _, ok := c.s.customers[id]; !ok {
		return notFound("Customer")
	}
	delete(c.s.customers, id)
	return nil
}

// ======================================================
// BOOKINGS
// ======================================================

type Bookings struct {
	s *Store
}

var _ domain.BookingRepository = (*Bookings)(nil)

func (b *Bookings) List(ctx context.Context) ([]models.Appointment, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	out := make([]models.Appointment, 0, len(b.s.order))
	for _, id := range b.s.order {
		out = append(out, b.s.bookings[id])
	}
	return out, nil
}

func (b *Bookings) GetByID(ctx context.Context, id string) (models.Appointment, error) {
	b.s.mu.RLock()
	defer b.s.mu.RUnlock()

	ap, ok := b.s.bookings[id]
	if !ok {
		return models.Appointment{}, notFound("Booking")
	}
	return ap, nil
}

func (b *Bookings) Create(ctx context.Context, draft models.Appointment) (models.Appointment, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	draft.ID = uuid.NewString()
	if draft.Status == "" {
		draft.Status = string(domain.InitialStatus())
	}
	b.s.bookings[draft.ID] = draft
	b.s.order = append(b.s.order, draft.ID)
	return draft, nil
}

func (b *Bookings) Update(ctx context.Context, id string, patch models.AppointmentPatch) (models.Appointment, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	ap, ok := b.s.bookings[id]
	if !ok {
		return models.Appointment{}, notFound("Booking")
	}
	ap = patch.Apply(ap)
	b.s.bookings[id] = ap
	return ap, nil
}

func (b *Bookings) UpdateStatus(ctx context.Context, id string, status domain.Status) (models.Appointment, error) {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	ap, ok := b.s.bookings[id]
	if !ok {
		return models.Appointment{}, notFound("Booking")
	}
	ap.Status = string(status)
	b.s.bookings[id] = ap
	return ap, nil
}

func (b *Bookings) Delete(ctx context.Context, id string) error {
	b.s.mu.Lock()
	defer b.s.mu.Unlock()

	if _, ok := b.s.bookings[id]; !ok {
		return notFound("Booking")
	}
	delete(b.s.bookings, id)
	for i, oid := range b.s.order {
		if oid == id {
			b.s.order = append(b.s.order[:i], b.s.order[i+1:]...)
			break
		}
	}
	return nil
}

// ======================================================
// DEMO DATA
// ======================================================

var demoCustomers = []models.Customer{
	{ID: "user-1", Name: "John Smith", Email: "john.smith@email.com"},
	{ID: "user-2", Name: "Sarah Johnson", Email: "sarah.j@email.com"},
	{ID: "admin-1", Name: "Branch Admin", Email: "admin@capitecbank.example"},
}

var demoBookings = []models.Appointment{
	{ID: "1", CustomerID: "user-1", Service: "credit", Branch: "downtown", Date: calendar.NewDate(2026, time.January, 15), Time: calendar.At(10, 0), Status: "confirmed"},
	{ID: "2", CustomerID: "user-2", Service: "save", Branch: "westside", Date: calendar.NewDate(2026, time.January, 15), Time: calendar.At(14, 0), Status: "pending"},
	{ID: "3", CustomerID: "user-1", Service: "transact", Branch: "downtown", Date: calendar.NewDate(2026, time.January, 10), Time: calendar.At(11, 0), Status: "completed"},
}

