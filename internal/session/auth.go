package session

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/httperr"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/validators"
)

var ErrInvalidCredentials = httperr.ErrBusiness(httperr.CodeInvalidCredentials)

// ErrUnknownAccount is the ErrInvalidCredentials variant for an email the
// authenticator does not know. Only this one lets a chain move on.
var ErrUnknownAccount = fmt.Errorf("unknown account: %w", ErrInvalidCredentials)

// Authenticator resolves credentials to an identity. Unknown users return
// ErrUnknownAccount, bad passwords ErrInvalidCredentials.
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (models.Identity, error)
}

// ======================================================
// DIRECTORY (customer service)
// ======================================================

// DirectoryAuthenticator matches the email against the customer directory.
// The directory holds no credentials, so any non-empty password passes.
type DirectoryAuthenticator struct {
	customers appointment.CustomerRepository
	admins    map[string]bool
}

func NewDirectoryAuthenticator(customers appointment.CustomerRepository, adminEmails []string) *DirectoryAuthenticator {
	admins := make(map[string]bool, len(adminEmails))
	for _, e := range adminEmails {
		admins[validators.NormalizeEmail(e)] = true
	}
	return &DirectoryAuthenticator{customers: customers, admins: admins}
}

func (a *DirectoryAuthenticator) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	if strings.TrimSpace(password) == "" {
		return models.Identity{}, ErrInvalidCredentials
	}

	list, err := a.customers.List(ctx)
	if err != nil {
		return models.Identity{}, err
	}

	email = validators.NormalizeEmail(email)
	for _, c := range list {
		if validators.NormalizeEmail(c.Email) == email {
			return a.identity(c), nil
		}
	}
	return models.Identity{}, ErrUnknownAccount
}

// RoleFor applies the admin allow-list.
func (a *DirectoryAuthenticator) RoleFor(email string) string {
	if a.admins[validators.NormalizeEmail(email)] {
		return models.RoleAdmin
	}
	return models.RoleCustomer
}

func (a *DirectoryAuthenticator) identity(c models.Customer) models.Identity {
	return models.Identity{
		ID:    c.ID,
		Email: c.Email,
		Name:  c.Name,
		Role:  a.RoleFor(c.Email),
	}
}

// ======================================================
// DEMO ACCOUNTS
// ======================================================

type DemoAccount struct {
	Identity     models.Identity
	PasswordHash []byte
}

type DemoAuthenticator struct {
	accounts map[string]DemoAccount
}

// NewDemoAccount hashes password with bcrypt.
func NewDemoAccount(id models.Identity, password string) (DemoAccount, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return DemoAccount{}, err
	}
	return DemoAccount{Identity: id, PasswordHash: hash}, nil
}

func NewDemoAuthenticator(accounts ...DemoAccount) *DemoAuthenticator {
	m := make(map[string]DemoAccount, len(accounts))
	for _, acc := range accounts {
		m[validators.NormalizeEmail(acc.Identity.Email)] = acc
	}
	return &DemoAuthenticator{accounts: m}
}

func (a *DemoAuthenticator) Authenticate(_ context.Context, email, password string) (models.Identity, error) {
	acc, ok := a.accounts[validators.NormalizeEmail(email)]
	if !ok {
		return models.Identity{}, ErrUnknownAccount
	}
	if err := bcrypt.CompareHashAndPassword(acc.PasswordHash, []byte(password)); err != nil {
		return models.Identity{}, ErrInvalidCredentials
	}
	return acc.Identity, nil
}

// DefaultDemoAccounts are the fixed logins of demo mode. Their ids match the
// seeded demo customers.
func DefaultDemoAccounts() ([]DemoAccount, error) {
	seed := []struct {
		id       models.Identity
		password string
	}{
		{models.Identity{ID: "user-1", Email: "john.smith@email.com", Name: "John Smith", Role: models.RoleCustomer}, "demo123"},
		{models.Identity{ID: "admin-1", Email: "admin@capitecbank.example", Name: "Branch Admin", Role: models.RoleAdmin}, "admin123"},
	}

	out := make([]DemoAccount, 0, len(seed))
	for _, s := range seed {
		acc, err := NewDemoAccount(s.id, s.password)
		if err != nil {
			return nil, err
		}
		out = append(out, acc)
	}
	return out, nil
}

// ======================================================
// CHAIN
// ======================================================

// ChainAuthenticator tries each authenticator in order. Only
// ErrUnknownAccount falls through to the next one, so a wrong password for
// a known account is final.
type ChainAuthenticator []Authenticator

func (c ChainAuthenticator) Authenticate(ctx context.Context, email, password string) (models.Identity, error) {
	for _, a := range c {
		id, err := a.Authenticate(ctx, email, password)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, ErrUnknownAccount) {
			return models.Identity{}, err
		}
	}
	return models.Identity{}, ErrInvalidCredentials
}
