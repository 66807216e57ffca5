package remote

import (
	"context"
	"net/http"
	"net/url"

	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// BookingClient is the REST binding of the booking resource.
type BookingClient struct {
	c *Client
}

var _ domain.BookingRepository = (*BookingClient)(nil)

func NewBookingClient(c *Client) *BookingClient {
	return &BookingClient{c: c}
}

func (bc *BookingClient) List(ctx context.Context) ([]models.Appointment, error) {
	out, err := fetch[[]models.Appointment](ctx, bc.c, http.MethodGet, "/getAllBookings", nil).Unwrap()
	if out == nil && err == nil {
		out = []models.Appointment{}
	}
	return out, err
}

func (bc *BookingClient) GetByID(ctx context.Context, id string) (models.Appointment, error) {
	return fetch[models.Appointment](ctx, bc.c, http.MethodGet, "/getBooking/"+url.PathEscape(id), nil).Unwrap()
}

// Create treats a 2xx without a booking id as a rejection: the caller has
// nothing to reference the new row by.
func (bc *BookingClient) Create(ctx context.Context, draft models.Appointment) (models.Appointment, error) {
	draft.ID = ""
	created, err := fetch[models.Appointment](ctx, bc.c, http.MethodPost, "/createBooking", draft).Unwrap()
	if err == nil && created.ID == "" {
		return models.Appointment{}, &RejectionError{Status: http.StatusBadGateway, Message: "Booking service returned no id"}
	}
	return created, err
}

func (bc *BookingClient) Update(ctx context.Context, id string, patch models.AppointmentPatch) (models.Appointment, error) {
	return fetch[models.Appointment](ctx, bc.c, http.MethodPut, "/updateBooking/"+url.PathEscape(id), patch).Unwrap()
}

// UpdateStatus uses the dedicated status endpoint.
func (bc *BookingClient) UpdateStatus(ctx context.Context, id string, status domain.Status) (models.Appointment, error) {
	body := map[string]string{"status": string(status)}
	return fetch[models.Appointment](ctx, bc.c, http.MethodPatch, "/updateBookingStatus/"+url.PathEscape(id), body).Unwrap()
}

func (bc *BookingClient) Delete(ctx context.Context, id string) error {
	_, err := bc.c.do(ctx, http.MethodDelete, "/"+url.PathEscape(id), nil)
	return err
}
