package memory

import (
	"context"
	"testing"

	"github.com/BruksfildServices01/bank-booking-portal/internal/calendar"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/infra/remote"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
)

func TestSeededBookingsKeepInsertionOrder(t *testing.T) {
	s := Seeded()
	list, err := s.Bookings().List(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 3 || list[0].ID != "1" || list[2].ID != "3" {
		t.Fatalf("unexpected seed %+v", list)
	}
}

func TestBookingLifecycle(t *testing.T) {
	ctx := context.Background()
	b := New().Bookings()

	created, err := b.Create(ctx, models.Appointment{CustomerID: "c1", Service: "save", Branch: "downtown", Date: calendar.NewDate(2026, 11, 2), Time: calendar.At(9, 0)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" || created.Status != "pending" {
		t.Fatalf("unexpected created booking %+v", created)
	}

	updated, err := b.UpdateStatus(ctx, created.ID, domain.StatusConfirmed)
	if err != nil || updated.Status != "confirmed" {
		t.Fatalf("update status: %+v %v", updated, err)
	}

	if err := b.Delete(ctx, created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := b.GetByID(ctx, created.ID); !remote.IsNotFound(err) {
		t.Fatalf("expected not found after delete, got %v", err)
	}
	if list, _ := b.List(ctx); len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestCustomerCreateAndPatch(t *testing.T) {
	ctx := context.Background()
	c := New().Customers()

	id, err := c.Create(ctx, "Naledi", "naledi@example.com")
	if err != nil || id == "" {
		t.Fatalf("create: %q %v", id, err)
	}
	name := "Naledi M."
	got, err := c.Update(ctx, id, models.CustomerPatch{Name: &name})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != name || got.Email != "naledi@example.com" {
		t.Fatalf("unexpected customer %+v", got)
	}
}
