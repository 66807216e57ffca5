// Package session keeps the signed-in identity for one browser session.
// A Holder is an explicit object bound to a session id; nothing here is
// process-global.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/remote"
	"github.com/BruksfildServices01/bank-booking-portal/internal/logging"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/validators"
)

const minPasswordLength = 6

var errUnreachable = errors.New("Unable to connect to the server")

// Manager opens holders over a shared store and authenticator.
type Manager struct {
	store       Store
	auth        Authenticator
	customers   appointment.CustomerRepository
	ttl         time.Duration
	checkDomain bool
	log         *zap.Logger
}

type ManagerOptions struct {
	TTL                 time.Duration
	ValidateEmailDomain bool
	Logger              *zap.Logger
}

func NewManager(store Store, auth Authenticator, customers appointment.CustomerRepository, opts ManagerOptions) *Manager {
	return &Manager{
		store:       store,
		auth:        auth,
		customers:   customers,
		ttl:         opts.TTL,
		checkDomain: opts.ValidateEmailDomain,
		log:         logging.OrNop(opts.Logger),
	}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// NewSessionID mints an id for a fresh session.
func NewSessionID() string {
	return uuid.NewString()
}

// Open binds a holder to sid. Call Init to restore a stored identity.
func (m *Manager) Open(sid string) *Holder {
	return &Holder{m: m, sid: sid}
}

// ======================================================
// HOLDER
// ======================================================

type Holder struct {
	m   *Manager
	sid string

	mu       sync.RWMutex
	identity *models.Identity
}

func (h *Holder) SessionID() string {
	return h.sid
}

// Init restores the identity from the store. A missing record is not an error.
func (h *Holder) Init(ctx context.Context) error {
	id, ok, err := h.m.store.Load(ctx, h.sid)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if ok {
		h.identity = &id
	} else {
		h.identity = nil
	}
	return nil
}

func (h *Holder) Identity() (models.Identity, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.identity == nil {
		return models.Identity{}, false
	}
	return *h.identity, true
}

func (h *Holder) Login(ctx context.Context, email, password string) (models.Identity, error) {
	id, err := h.m.auth.Authenticate(ctx, email, password)
	if err != nil {
		if remote.IsNetwork(err) {
			h.m.log.Warn("login backend unreachable", zap.Error(err))
			return models.Identity{}, &remote.NetworkError{Op: "login", Err: errUnreachable}
		}
		return models.Identity{}, err
	}

	if err := h.set(ctx, id); err != nil {
		return models.Identity{}, err
	}
	return id, nil
}

// Register creates the customer and signs it in. The customer service only
// returns the new id, so the record is read back before use.
func (h *Holder) Register(ctx context.Context, name, email, password string) (models.Identity, error) {
	name = strings.TrimSpace(name)
	email = validators.NormalizeEmail(email)

	if name == "" {
		return models.Identity{}, httperr.ErrBusiness(httperr.CodeMissingName)
	}
	if len(password) < minPasswordLength {
		return models.Identity{}, httperr.ErrBusiness(httperr.CodeWeakPassword)
	}
	if !validators.IsEmailSyntaxValid(email) {
		return models.Identity{}, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}
	if h.m.checkDomain && !validators.IsEmailDomainValid(email) {
		return models.Identity{}, httperr.ErrBusiness(httperr.CodeInvalidEmail)
	}

	existing, err := h.m.customers.List(ctx)
	if err != nil {
		return models.Identity{}, err
	}
	for _, c := range existing {
		if validators.NormalizeEmail(c.Email) == email {
			return models.Identity{}, httperr.ErrBusiness(httperr.CodeEmailTaken)
		}
	}

	newID, err := h.m.customers.Create(ctx, name, email)
	if err != nil {
		return models.Identity{}, err
	}
	customer, err := h.m.customers.GetByID(ctx, newID)
	if err != nil {
		return models.Identity{}, err
	}

	id := models.Identity{
		ID:    customer.ID,
		Email: customer.Email,
		Name:  customer.Name,
		Role:  models.RoleCustomer,
	}

	if err := h.set(ctx, id); err != nil {
		return models.Identity{}, err
	}
	return id, nil
}

// Logout clears the identity in memory and in the store.
func (h *Holder) Logout(ctx context.Context) error {
	h.mu.Lock()
	h.identity = nil
	h.mu.Unlock()

	return h.m.store.Delete(ctx, h.sid)
}

func (h *Holder) set(ctx context.Context, id models.Identity) error {
	if err := h.m.store.Save(ctx, h.sid, id, h.m.ttl); err != nil {
		return err
	}

	h.mu.Lock()
	h.identity = &id
	h.mu.Unlock()
	return nil
}
