package handoff

import (
	"fmt"
	"strings"

	"github.com/arthur-debert/implx/pkg/errors"
	"github.com/arthur-debert/implx/pkg/types"
)

// Consumer receives complete deliveries, one trait at a time
type Consumer interface {
	Register(trait types.TraitPath, impls types.Implementors)
}

// ConsumerFunc adapts a plain function to the Consumer interface
type ConsumerFunc func(trait types.TraitPath, impls types.Implementors)

// Register calls f(trait, impls)
func (f ConsumerFunc) Register(trait types.TraitPath, impls types.Implementors) {
	f(trait, impls)
}

// ConsumerState is either NotInstalled or Installed(handler)
type ConsumerState struct {
	handler Consumer
}

// NotInstalled is the state of a Handoff before Install succeeds
var NotInstalled = ConsumerState{}

// Installed returns the state holding handler
func Installed(handler Consumer) ConsumerState {
	return ConsumerState{handler: handler}
}

// Handler returns the installed consumer, if any
func (s ConsumerState) Handler() (Consumer, bool) {
	return s.handler, s.handler != nil
}

// IsInstalled reports whether a consumer is installed
func (s ConsumerState) IsInstalled() bool {
	return s.handler != nil
}

func (s ConsumerState) String() string {
	if s.IsInstalled() {
		return "installed"
	}
	return "not-installed"
}

// Mode selects what happens to deliveries parked before installation
type Mode int

const (
	// ModeSlot keeps only the most recent parked delivery
	ModeSlot Mode = iota
	// ModeQueue keeps every parked delivery in production order
	ModeQueue
)

func (m Mode) String() string {
	switch m {
	case ModeSlot:
		return "slot"
	case ModeQueue:
		return "queue"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// ParseMode parses "slot" or "queue" (case-insensitive). An empty string
// selects ModeSlot.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "slot":
		return ModeSlot, nil
	case "queue":
		return ModeQueue, nil
	default:
		return ModeSlot, errors.Newf(errors.ErrInvalidInput, "unknown handoff mode %q", s).
			WithDetail("valid", []string{"slot", "queue"})
	}
}
