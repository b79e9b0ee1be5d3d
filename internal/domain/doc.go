// Package domain defines the entities displayed and exchanged by the
// application core: auth sessions, communities, shared resources, and
// thanks. Input structs carry the validation rules the CRUD collaborators
// enforce before emitting.
package domain
