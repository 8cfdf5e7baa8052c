package engagement

import (
	"context"
	"errors"
)

// Package engagement implements the client-side half of the unique
// read/download counting protocol: a local de-duplication ledger plus the
// call that triggers the server-side atomic increment. The ledger is an
// explicit trust boundary: a client can wipe it and recount, so the
// resulting metrics are approximate, not billing-grade.

// Counter names an engagement action from the client's point of view.
type Counter string

const (
	Read     Counter = "read"
	Download Counter = "download"
)

// ErrResourceGone reports that the increment target no longer exists on the
// server. Non-fatal to the surrounding flow; the primary action proceeds.
var ErrResourceGone = errors.New("resource no longer exists")

// Ledger records which (resource, counter) pairs this client installation has
// already counted. Entries never expire and are never reset.
type Ledger interface {
	// Counted reports whether the pair was already counted.
	Counted(ctx context.Context, resourceID string, c Counter) (bool, error)
	// MarkCounted records the pair. Marking an already-marked pair is a no-op.
	MarkCounted(ctx context.Context, resourceID string, c Counter) error
}

// Incrementer triggers one server-side atomic counter increment.
type Incrementer interface {
	Increment(ctx context.Context, resourceID string, c Counter) error
}
