package drive

import (
	"context"
	"fmt"
)

// Resolver resolves an ordered path of folder names to the deepest folder,
// creating missing levels on the way down. Each segment's parent is the
// previous segment's result, so resolution is strictly sequential; levels are
// never resolved in parallel.
type Resolver struct {
	drive Drive
}

// NewResolver constructs a Resolver on top of a Drive client.
func NewResolver(d Drive) *Resolver {
	return &Resolver{drive: d}
}

// Resolve walks the segments left to right, reusing an existing folder when
// the point lookup hits and creating it otherwise. Any lookup or create error
// aborts resolution; a partial chain is never treated as success.
func (r *Resolver) Resolve(ctx context.Context, segments []string) (Folder, error) {
	if len(segments) == 0 {
		return Folder{}, fmt.Errorf("empty folder path")
	}
	parent := r.drive.Root()
	for _, name := range segments {
		found, err := r.drive.FindFolder(ctx, name, parent)
		if err != nil {
			return Folder{}, fmt.Errorf("lookup folder %q: %w", name, err)
		}
		if found != nil {
			parent = *found
			continue
		}
		created, err := r.drive.CreateFolder(ctx, name, parent)
		if err != nil {
			return Folder{}, fmt.Errorf("create folder %q: %w", name, err)
		}
		parent = created
	}
	return parent, nil
}

// ClassificationPath builds the four-level folder path for one resource:
// College / Course / Sem_N / Subject. The upload title doubles as the subject
// folder name.
func ClassificationPath(college, course, semester, subject string) []string {
	return []string{college, course, "Sem_" + semester, subject}
}
