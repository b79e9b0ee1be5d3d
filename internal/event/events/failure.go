package events

// OperationFailed is the payload of every "*.failed" event except
// auth.signout.failed. The error string is applied verbatim to the owning
// domain slice.
type OperationFailed struct {
	Error string
}
