// Package state holds the reactive application state container.
//
// The container owns one slice per entity domain (auth, communities,
// resources, thanks) and registers the handler sets that drive each slice's
// request/success/failure machine. State can only change in reaction to a
// bus event: the public actions emit "*.requested" events and return
// immediately, and every mutation happens inside a subscribed handler. This
// keeps every state transition auditable as an event.
//
// Each "*.requested" emission carries a correlation token which the slice
// records as its pending request. Outcome handlers compare tokens before
// applying: a response to a superseded request is logged and discarded
// instead of overwriting newer state.
package state
