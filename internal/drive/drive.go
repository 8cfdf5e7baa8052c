package drive

import (
	"context"
	"io"
)

// Package drive contains the hierarchical object store abstraction used for
// uploaded study files. Folders form a four-level tree
// (College/Course/Sem_N/Subject) with file objects as leaves. Implementations
// must rely on streaming I/O only; no local disk is used.

// Folder identifies one resolved folder level. ID is the store-assigned
// folder identifier; Path is the implementation's addressing key for children.
type Folder struct {
	ID   string
	Path string
}

// ObjectRef identifies an uploaded file object inside the store.
type ObjectRef struct {
	Key string
}

// Drive is a reusable client for the external hierarchical object store.
// The store does not enforce uniqueness on (name, parent), so FindFolder
// followed by CreateFolder is a documented, bounded race: two concurrent
// callers may both create the same path segment. Both results are valid.
type Drive interface {
	// Root returns the implicit top-level folder of the resource tree.
	Root() Folder
	// FindFolder looks up a non-trashed folder with the exact name under the
	// exact parent. It returns (nil, nil) when no such folder exists.
	FindFolder(ctx context.Context, name string, parent Folder) (*Folder, error)
	// CreateFolder creates a folder with the given name under the parent.
	CreateFolder(ctx context.Context, name string, parent Folder) (Folder, error)
	// UploadFile streams the payload into the given folder.
	UploadFile(ctx context.Context, parent Folder, name, contentType string, r io.Reader, size int64) (ObjectRef, error)
	// AllowPublicRead grants anyone-with-the-link read access to the object
	// and returns its public view link. Upload without a successful
	// AllowPublicRead must never be reported as success to the caller.
	AllowPublicRead(ctx context.Context, obj ObjectRef) (string, error)
	// Health verifies connectivity and authentication against the store.
	Health(ctx context.Context) error
}
