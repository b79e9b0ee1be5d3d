// Package dispatch executes event handlers with panic isolation and timing.
// Dispatch is always synchronous in the emitter's goroutine; a misbehaving
// handler is reported through the Result and never crashes the dispatcher or
// its sibling handlers.
package dispatch
