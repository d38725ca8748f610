package handoff

import "github.com/arthur-debert/implx/pkg/types"

// Observer is notified of every state transition of a Handoff. Methods are
// called with the Handoff's lock held and must not call back into it.
type Observer interface {
	// Delivered fires after a delivery reached the consumer, directly or by drain
	Delivered(d types.Delivery)
	// Parked fires when a delivery is stored because no consumer is installed
	Parked(d types.Delivery)
	// Overwritten fires with the pending delivery a newer one replaced
	Overwritten(lost types.Delivery)
	// Drained fires once per Drain with the number of deliveries taken
	Drained(n int)
}

// NopObserver ignores every notification
type NopObserver struct{}

func (NopObserver) Delivered(types.Delivery)   {}
func (NopObserver) Parked(types.Delivery)      {}
func (NopObserver) Overwritten(types.Delivery) {}
func (NopObserver) Drained(int)                {}

// multiObserver fans notifications out to several observers
type multiObserver []Observer

func (m multiObserver) Delivered(d types.Delivery) {
	for _, o := range m {
		o.Delivered(d)
	}
}

func (m multiObserver) Parked(d types.Delivery) {
	for _, o := range m {
		o.Parked(d)
	}
}

func (m multiObserver) Overwritten(lost types.Delivery) {
	for _, o := range m {
		o.Overwritten(lost)
	}
}

func (m multiObserver) Drained(n int) {
	for _, o := range m {
		o.Drained(n)
	}
}
