// Package store is the in-memory CRUD collaborator the event bus was built
// for. Gateway methods emit the "*.requested" event through the container's
// actions, perform the data operation (validation, authorization,
// soft-delete bookkeeping), and emit the matching outcome event carrying the
// request's correlation token. The gateway never subscribes to the bus; it
// only produces events.
package store
