package appointment

import (
	"context"

	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

// BookingRepository is the booking resource as the engine sees it.
type BookingRepository interface {
	List(ctx context.Context) ([]models.Appointment, error)
	GetByID(ctx context.Context, id string) (models.Appointment, error)
	Create(ctx context.Context, draft models.Appointment) (models.Appointment, error)
	Update(ctx context.Context, id string, patch models.AppointmentPatch) (models.Appointment, error)
	UpdateStatus(ctx context.Context, id string, status Status) (models.Appointment, error)
	Delete(ctx context.Context, id string) error
}

// CustomerRepository is the customer resource. Create returns only the new id.
type CustomerRepository interface {
	List(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id string) (models.Customer, error)
	Create(ctx context.Context, name, email string) (string, error)
	Update(ctx context.Context, id string, patch models.CustomerPatch) (models.Customer, error)
	Delete(ctx context.Context, id string) error
}
