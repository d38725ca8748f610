// Package handoff implements deferred implementor registration.
//
// Fragment producers, one per trait, call Produce as soon as they run. The
// index consumer is installed later, at a moment the host chooses. Until it
// is, deliveries are parked on the Handoff:
//
//	Produce ──► consumer installed? ──yes──► Consumer.Register (synchronous)
//	                  │
//	                  no
//	                  ▼
//	            pending slot  ◄── overwritten by the next Produce (ModeSlot)
//	                  │
//	Install + Drain ──┘  forward whatever is pending, then deliver directly
//
// In ModeSlot, the default, the slot holds at most one delivery and the
// last write wins: a producer that parks while another delivery is already
// pending loses the earlier one. ModeQueue keeps every parked delivery in
// production order instead.
//
// Installing a consumer does not drain the slot. Whoever installs it is
// expected to call Drain and forward the result, or to use InstallAndDrain,
// which does both under one lock.
package handoff
