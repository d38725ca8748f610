package handoff

import (
	"reflect"
	"sync"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/logging"
	"github.com/arthur-debert/implx/pkg/types"
	"github.com/rs/zerolog"
)

// Handoff bridges fragment producers and a consumer that may not be
// installed yet. The zero value is not usable; call New.
type Handoff struct {
	mu       sync.Mutex
	mode     Mode
	state    ConsumerState
	pending  []types.Delivery
	observer Observer
	logger   zerolog.Logger
}

// Option configures a Handoff
type Option func(*Handoff)

// WithMode selects slot or queue semantics for parked deliveries
func WithMode(m Mode) Option {
	return func(h *Handoff) { h.mode = m }
}

// WithObserver adds an observer; it may be given more than once
func WithObserver(o Observer) Option {
	return func(h *Handoff) {
		if o == nil {
			return
		}
		if _, isNop := h.observer.(NopObserver); isNop {
			h.observer = o
			return
		}
		if multi, ok := h.observer.(multiObserver); ok {
			h.observer = append(multi, o)
			return
		}
		h.observer = multiObserver{h.observer, o}
	}
}

// WithLogger replaces the default component logger
func WithLogger(l zerolog.Logger) Option {
	return func(h *Handoff) { h.logger = l }
}

// New creates a Handoff with no consumer installed and nothing pending
func New(opts ...Option) *Handoff {
	h := &Handoff{
		mode:     ModeSlot,
		state:    NotInstalled,
		observer: NopObserver{},
		logger:   logging.GetLogger("handoff"),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Mode returns the parking mode
func (h *Handoff) Mode() Mode {
	return h.mode
}

// State returns the current consumer state
func (h *Handoff) State() ConsumerState {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Produce delivers d to the installed consumer, or parks it when there is
// none. The delivery is copied first, so the caller may reuse d afterwards.
// Produce never fails.
func (h *Handoff) Produce(d types.Delivery) {
	d = d.Clone()

	h.mu.Lock()
	defer h.mu.Unlock()

	if handler, ok := h.state.Handler(); ok {
		h.deliver(handler, d)
		return
	}
	h.park(d)
}

// Install makes c the consumer for every later Produce. It does not forward
// anything already pending; see Drain and InstallAndDrain.
func (h *Handoff) Install(c Consumer) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.install(c)
}

// Pending returns copies of the parked deliveries without clearing them
func (h *Handoff) Pending() []types.Delivery {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]types.Delivery, len(h.pending))
	for i, d := range h.pending {
		out[i] = d.Clone()
	}
	return out
}

// Drain removes and returns the parked deliveries in production order. A
// drained delivery is never returned again.
func (h *Handoff) Drain() []types.Delivery {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.take()
}

// InstallAndDrain installs c and forwards everything pending to it before
// any later Produce can deliver. It returns the number of forwarded
// deliveries.
func (h *Handoff) InstallAndDrain(c Consumer) (int, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.install(c); err != nil {
		return 0, err
	}
	drained := h.take()
	for _, d := range drained {
		h.deliver(c, d)
	}
	return len(drained), nil
}

func (h *Handoff) install(c Consumer) error {
	if isNil(c) {
		return errors.New(errors.ErrInvalidInput, "consumer cannot be nil")
	}
	if h.state.IsInstalled() {
		return errors.New(errors.ErrAlreadyInstalled, "a consumer is already installed")
	}
	h.state = Installed(c)
	h.logger.Debug().
		Int("pending", len(h.pending)).
		Str("mode", h.mode.String()).
		Msg("Consumer installed")
	return nil
}

func (h *Handoff) deliver(c Consumer, d types.Delivery) {
	c.Register(d.Trait, d.Implementors)
	h.observer.Delivered(d)
	h.logger.Trace().
		Str("trait", d.Trait.String()).
		Int("libraries", len(d.Implementors)).
		Int("implementors", d.Implementors.Count()).
		Msg("Delivered implementors")
}

func (h *Handoff) park(d types.Delivery) {
	if h.mode == ModeSlot && len(h.pending) > 0 {
		lost := h.pending[0]
		h.pending = h.pending[:0]
		h.observer.Overwritten(lost)
		h.logger.Info().
			Str("lost", lost.Trait.String()).
			Str("by", d.Trait.String()).
			Msg("Pending implementors overwritten before a consumer was installed")
	}
	h.pending = append(h.pending, d)
	h.observer.Parked(d)
	h.logger.Debug().
		Str("trait", d.Trait.String()).
		Int("pending", len(h.pending)).
		Msg("No consumer installed, parked implementors")
}

func (h *Handoff) take() []types.Delivery {
	drained := h.pending
	h.pending = nil
	h.observer.Drained(len(drained))
	if drained == nil {
		drained = []types.Delivery{}
	}
	return drained
}

// isNil also catches typed nils such as (*index.Index)(nil) or a nil
// ConsumerFunc, which compare unequal to a nil interface.
func isNil(c Consumer) bool {
	if c == nil {
		return true
	}
	v := reflect.ValueOf(c)
	switch v.Kind() {
	case reflect.Pointer, reflect.Func, reflect.Map, reflect.Slice, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}
