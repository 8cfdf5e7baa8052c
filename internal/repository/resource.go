package repository

import (
	"context"
	"errors"

	"studyvault/internal/model"
)

// Package repository contains data access abstractions for the document
// store. Implementations live in subpackages (e.g., mongodb) inside this
// directory. No business logic here, strictly persistence operations.

// ErrNotFound is returned when a targeted resource record no longer exists.
var ErrNotFound = errors.New("resource not found")

// Counter names an engagement counter field on a resource record.
type Counter string

const (
	CounterRead     Counter = "read_count"
	CounterDownload Counter = "download_count"
)

// ResourceFilter holds the exact-match classification filters for queries.
// Empty fields are not applied; provided fields combine with AND semantics.
type ResourceFilter struct {
	College  string
	Category string
	Course   string
	Semester string
	Subject  string
}

// ResourceRepository defines data access for resource records.
type ResourceRepository interface {
	// Create inserts a new resource record as a single atomic document write.
	// The store assigns the id; the stored record is returned.
	Create(ctx context.Context, res *model.Resource) (*model.Resource, error)

	// IncrementCounter applies a server-side atomic increment to the named
	// counter. Returns ErrNotFound when the resource no longer exists.
	IncrementCounter(ctx context.Context, id string, counter Counter) error

	// Search returns records matching all provided filters, newest first.
	// A query matching nothing returns an empty list, not an error.
	Search(ctx context.Context, f ResourceFilter) ([]model.Resource, error)

	// ListByUploader returns the given user's uploads, newest first.
	ListByUploader(ctx context.Context, uploaderID string) ([]model.Resource, error)
}

// ProfileRepository looks up user profile data kept by the identity side of
// the product. Only the display name is needed, for denormalization at
// resource creation time.
type ProfileRepository interface {
	// DisplayName returns the user's display name, or "" when the profile is
	// missing or has no name set.
	DisplayName(ctx context.Context, userID string) (string, error)
}
