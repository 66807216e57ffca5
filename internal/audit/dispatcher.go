package audit

import (
	"sync"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/bank-booking-portal/internal/logging"
)

const (
	ActionAppointmentCreated       = "appointment_created"
	ActionAppointmentUpdated       = "appointment_updated"
	ActionAppointmentDeleted       = "appointment_deleted"
	ActionAppointmentStatusChanged = "appointment_status_changed"
	ActionCustomerRegistered       = "customer_registered"
	ActionLogin                    = "login"
	ActionLogout                   = "logout"
)

type Event struct {
	ActorID    string
	ActorEmail string
	Action     string
	Entity     string
	EntityID   string
	Metadata   any
}

// Sink persists or emits one event.
type Sink interface {
	Record(ev Event) error
}

// Dispatcher hands events to a single worker goroutine. A full queue drops
// the event; API calls never wait on auditing.
type Dispatcher struct {
	sinks []Sink
	log   *zap.Logger
	queue chan Event
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func NewDispatcher(log *zap.Logger, sinks ...Sink) *Dispatcher {
	d := &Dispatcher{
		sinks: sinks,
		log:   logging.OrNop(log),
		queue: make(chan Event, 100),
		done:  make(chan struct{}),
	}

	go d.worker()
	return d
}

func (d *Dispatcher) worker() {
	defer close(d.done)
	for ev := range d.queue {
		for _, s := range d.sinks {
			if err := s.Record(ev); err != nil {
				d.log.Warn("audit sink failed", zap.String("action", ev.Action), zap.Error(err))
			}
		}
	}
}

// Dispatch is safe on a nil Dispatcher.
func (d *Dispatcher) Dispatch(ev Event) {
	if d == nil {
		return
	}

	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return
	}

	select {
	case d.queue <- ev:
	default:
		d.log.Warn("audit queue full, dropping event", zap.String("action", ev.Action))
	}
}

// Close drains the queue and stops the worker.
func (d *Dispatcher) Close() {
	if d == nil {
		return
	}

	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	close(d.queue)
	d.mu.Unlock()

	<-d.done
}
