// Package appointment holds the synchronization engine: the single gateway
// to the booking resource and the owner of the in-memory appointment list.
//
// Mutations patch the list optimistically, call the backend, roll back on
// failure and reconcile with a refetch on success. Every request takes a
// sequence number; a fetch only lands when nothing newer was dispatched
// after it, so slow responses never overwrite fresher state.
package appointment

import (
	"context"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/BruksfildServices01/bank-booking-portal/internal/audit"
	"github.com/BruksfildServices01/bank-booking-portal/internal/customercache"
	domain "github.com/BruksfildServices01/bank-booking-portal/internal/domain/appointment"
	"github.com/BruksfildServices01/bank-booking-portal/internal/dto"
	"github.com/BruksfildServices01/bank-booking-portal/internal/logging"
	"github.com/BruksfildServices01/bank-booking-portal/internal/models"
	"github.com/BruksfildServices01/bank-booking-portal/internal/timezone"
)

const draftPrefix = "draft-"

// ======================================================
// ENGINE
// ======================================================

type Engine struct {
	repo    domain.BookingRepository
	cache   *customercache.Cache
	audit   *audit.Dispatcher
	clock   timezone.Clock
	catalog []domain.Slot
	log     *zap.Logger

	mu     sync.RWMutex
	rows   []dto.AppointmentView
	seq    uint64
	loaded bool
	loads  singleflight.Group
}

type Options struct {
	Audit   *audit.Dispatcher
	Clock   timezone.Clock
	Catalog []domain.Slot
	Logger  *zap.Logger
}

func NewEngine(repo domain.BookingRepository, cache *customercache.Cache, opts Options) *Engine {
	if opts.Clock == nil {
		opts.Clock = timezone.SystemClock(timezone.DefaultTimezone)
	}
	if opts.Catalog == nil {
		opts.Catalog = domain.DefaultSlots()
	}
	return &Engine{
		repo:    repo,
		cache:   cache,
		audit:   opts.Audit,
		clock:   opts.Clock,
		catalog: opts.Catalog,
		log:     logging.OrNop(opts.Logger),
	}
}

// ======================================================
// RESULT
// ======================================================

// Result is the {success, error} shape reported to callers.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

func Outcome(err error) Result {
	if err != nil {
		return Result{Success: false, Error: err.Error()}
	}
	return Result{Success: true}
}

// ======================================================
// LIST HELPERS (callers hold e.mu)
// ======================================================

func (e *Engine) dispatch() uint64 {
	e.seq++
	return e.seq
}

func (e *Engine) indexOf(id string) int {
	for i := range e.rows {
		if e.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) replace(id string, row dto.AppointmentView) bool {
	if i := e.indexOf(id); i >= 0 {
		e.rows[i] = row
		return true
	}
	return false
}

func (e *Engine) drop(id string) (dto.AppointmentView, int, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return dto.AppointmentView{}, -1, false
	}
	row := e.rows[i]
	e.rows = append(e.rows[:i:i], e.rows[i+1:]...)
	return row, i, true
}

func (e *Engine) insertAt(i int, row dto.AppointmentView) {
	if i < 0 || i > len(e.rows) {
		i = len(e.rows)
	}
	e.rows = append(e.rows, dto.AppointmentView{})
	copy(e.rows[i+1:], e.rows[i:])
	e.rows[i] = row
}

// restyle keeps the customer/catalog labels of prev on an updated appointment.
func restyle(prev dto.AppointmentView, ap models.Appointment) dto.AppointmentView {
	prev.Appointment = ap
	if b, ok := domain.FindBranch(ap.Branch); ok {
		prev.BranchName = b.Name
	}
	if s, ok := domain.FindService(ap.Service); ok {
		prev.ServiceName = s.Name
	}
	return prev
}

func (e *Engine) hydrate(ctx context.Context, ap models.Appointment) dto.AppointmentView {
	return e.cache.Hydrate(ctx, []models.Appointment{ap})[0]
}

func (e *Engine) record(ctx context.Context, action, entityID string, meta any) {
	actor := audit.ActorFrom(ctx)
	e.audit.Dispatch(audit.Event{
		ActorID:    actor.ID,
		ActorEmail: actor.Email,
		Action:     action,
		Entity:     "appointment",
		EntityID:   entityID,
		Metadata:   meta,
	})
}

// reconcile refetches after a successful mutation. A failure keeps the
// optimistic state.
func (e *Engine) reconcile(ctx context.Context, op string) {
	if _, err := e.fetch(ctx); err != nil {
		e.log.Warn("reconcile failed, keeping optimistic state",
			zap.String("op", op),
			zap.Error(err),
		)
	}
}
