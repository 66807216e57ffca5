// Package customercache memoizes customer lookups for admin rendering.
// Entries live until Reset; failed lookups are never stored.
package customercache

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/dto"
	"github.com/BruksfildServices01/bank-booking-portal/internal/logging"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

const UnknownCustomer = "Unknown customer"

// hydrateConcurrency bounds parallel lookups during Hydrate.
const hydrateConcurrency = 8

type Lookup interface {
	GetByID(ctx context.Context, id string) (models.Customer, error)
}

type Cache struct {
	lookup Lookup
	log    *zap.Logger

	mu      sync.RWMutex
	entries map[string]models.Customer
	group   singleflight.Group
}

func New(lookup Lookup, log *zap.Logger) *Cache {
	return &Cache{
		lookup:  lookup,
		log:     logging.OrNop(log),
		entries: make(map[string]models.Customer),
	}
}

// Resolve returns the customer for id, asking the backend at most once per
// id across concurrent callers. ok is false when the lookup failed.
func (c *Cache) Resolve(ctx context.Context, id string) (models.Customer, bool) {
	if id == "" {
		return models.Customer{}, false
	}

	if cu, hit := c.Peek(id); hit {
		return cu, true
	}

	// The shared lookup outlives any one caller's cancellation.
	lookupCtx := context.WithoutCancel(ctx)
	v, err, _ := c.group.Do(id, func() (any, error) {
		if cu, hit := c.Peek(id); hit {
			return cu, nil
		}

		cu, err := c.lookup.GetByID(lookupCtx, id)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[id] = cu
		c.mu.Unlock()
		return cu, nil
	})
	if err != nil {
		c.log.Debug("customer lookup failed", zap.String("customer_id", id), zap.Error(err))
		return models.Customer{}, false
	}
	return v.(models.Customer), true
}

// Hydrate joins each appointment with its customer and catalog names.
// Unresolved customers render as UnknownCustomer with an empty email.
func (c *Cache) Hydrate(ctx context.Context, list []models.Appointment) []dto.AppointmentView {
	ids := make(map[string]struct{})
	for _, ap := range list {
		ids[ap.CustomerID] = struct{}{}
	}

	var (
		mu       sync.Mutex
		resolved = make(map[string]models.Customer, len(ids))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(hydrateConcurrency)
	for id := range ids {
		g.Go(func() error {
			if cu, ok := c.Resolve(gctx, id); ok {
				mu.Lock()
				resolved[id] = cu
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	out := make([]dto.AppointmentView, 0, len(list))
	for _, ap := range list {
		out = append(out, view(ap, resolved))
	}
	return out
}

func view(ap models.Appointment, customers map[string]models.Customer) dto.AppointmentView {
	v := dto.AppointmentView{
		Appointment:  ap,
		CustomerName: UnknownCustomer,
		ServiceName:  ap.Service,
		BranchName:   ap.Branch,
	}
	if cu, ok := customers[ap.CustomerID]; ok {
		v.CustomerName = cu.Name
		v.CustomerEmail = cu.Email
	}
	if s, ok := appointment.FindService(ap.Service); ok {
		v.ServiceName = s.Name
	}
	if b, ok := appointment.FindBranch(ap.Branch); ok {
		v.BranchName = b.Name
	}
	return v
}

// Peek reads the cache without touching the backend.
func (c *Cache) Peek(id string) (models.Customer, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	cu, ok := c.entries[id]
	return cu, ok
}

func (c *Cache) Reset() {
	c.mu.Lock()
	c.entries = make(map[string]models.Customer)
	c.mu.Unlock()
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
