package state

import (
	"fmt"

	"github.com/tidwall/sjson"
)

// SnapshotJSON renders the aggregate state as a JSON document, one subtree
// per domain slice. The snapshot is a read-only view for inspection and the
// CLI; it is not a persistence format.
func (c *Container) SnapshotJSON() (string, error) {
	auth := c.Auth()
	communities := c.Communities()
	resources := c.Resources()
	thanks := c.Thanks()

	out := "{}"
	var err error

	set := func(path string, value any) {
		if err != nil {
			return
		}
		out, err = sjson.Set(out, path, value)
	}

	set("auth.signedIn", auth.Session != nil)
	if auth.Session != nil {
		set("auth.session", auth.Session)
	}
	set("auth.isLoading", auth.IsLoading)
	set("auth.error", auth.Error)
	if auth.SignOutFailure != nil {
		set("auth.signOutFailure.errorCode", auth.SignOutFailure.ErrorCode)
		set("auth.signOutFailure.retryable", auth.SignOutFailure.Retryable)
		set("auth.signOutFailure.details", auth.SignOutFailure.Details)
	}

	set("communities.activeId", communities.ActiveID)
	set("communities.isLoading", communities.IsLoading)
	set("communities.error", communities.Error)
	set("communities.list", communities.List)

	set("resources.isLoading", resources.IsLoading)
	set("resources.error", resources.Error)
	set("resources.list", resources.List)

	set("thanks.isLoading", thanks.IsLoading)
	set("thanks.error", thanks.Error)
	set("thanks.list", thanks.List)

	if err != nil {
		return "", fmt.Errorf("building state snapshot: %w", err)
	}
	return out, nil
}
