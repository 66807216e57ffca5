package remote

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// CustomerClient is the REST binding of the customer resource.
type CustomerClient struct {
	c *Client
}

var _ domain.CustomerRepository = (*CustomerClient)(nil)

func NewCustomerClient(c *Client) *CustomerClient {
	return &CustomerClient{c: c}
}

func (cc *CustomerClient) List(ctx context.Context) ([]models.Customer, error) {
	out, err := fetch[[]models.Customer](ctx, cc.c, http.MethodGet, "/getAllCustomers", nil).Unwrap()
	if out == nil && err == nil {
		out = []models.Customer{}
	}
	return out, err
}

func (cc *CustomerClient) GetByID(ctx context.Context, id string) (models.Customer, error) {
	return fetch[models.Customer](ctx, cc.c, http.MethodGet, "/getCustomer/"+url.PathEscape(id), nil).Unwrap()
}

// Create registers a customer. The service answers with the new id as plain text.
func (cc *CustomerClient) Create(ctx context.Context, name, email string) (string, error) {
	body := map[string]string{"name": name, "email": email}
	return fetchText(ctx, cc.c, http.MethodPost, "/registerCustomer", body).Unwrap()
}

func (cc *CustomerClient) Update(ctx context.Context, id string, patch models.CustomerPatch) (models.Customer, error) {
	return fetch[models.Customer](ctx, cc.c, http.MethodPut, "/updateCustomer/"+url.PathEscape(id), patch).Unwrap()
}

func (cc *CustomerClient) Delete(ctx context.Context, id string) error {
	_, err := cc.c.do(ctx, http.MethodDelete, "/"+url.PathEscape(id), nil)
	return err
}
