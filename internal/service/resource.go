package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"studyvault/internal/drive"
	"studyvault/internal/model"
	"studyvault/internal/repository"
)

var (
	ErrReaderNil        = errors.New("reader is nil")
	ErrPrincipalNil     = errors.New("principal is required")
	ErrFolderResolution = errors.New("folder resolution failed")
	ErrUpload           = errors.New("object upload failed")
	ErrPermission       = errors.New("object permission failed")
	ErrPersistence      = errors.New("resource persistence failed")
	ErrNotFound         = errors.New("resource not found")
)

const anonymousUploader = "Anonymous"

// ResourceService defines the use cases of the resource ingestion pipeline.
type ResourceService interface {
	// Upload runs the full pipeline for one verified caller: resolve the
	// four-level folder path, stream the file into the deepest folder, grant
	// public read, and persist the resource record. Steps are strictly
	// sequential; the first failure aborts the request with no retry and no
	// rollback across the two external systems.
	Upload(ctx context.Context, p *model.Principal, req *model.UploadRequest, r io.Reader) (*model.Resource, error)

	// Search returns resources matching the provided exact-match filters,
	// newest first. No match yields an empty list.
	Search(ctx context.Context, f repository.ResourceFilter) ([]model.Resource, error)

	// ListByUploader returns the caller's own uploads, newest first.
	ListByUploader(ctx context.Context, uploaderID string) ([]model.Resource, error)

	// CountRead applies one atomic read-count increment.
	CountRead(ctx context.Context, id string) error

	// CountDownload applies one atomic download-count increment.
	CountDownload(ctx context.Context, id string) error
}

// resourceService is a concrete implementation of ResourceService.
type resourceService struct {
	drive    drive.Drive
	resolver *drive.Resolver
	repo     repository.ResourceRepository
	profiles repository.ProfileRepository
}

// NewResourceService constructs a new ResourceService.
func NewResourceService(d drive.Drive, repo repository.ResourceRepository, profiles repository.ProfileRepository) ResourceService {
	return &resourceService{
		drive:    d,
		resolver: drive.NewResolver(d),
		repo:     repo,
		profiles: profiles,
	}
}

func (s *resourceService) Upload(ctx context.Context, p *model.Principal, req *model.UploadRequest, r io.Reader) (*model.Resource, error) {
	if p == nil {
		return nil, ErrPrincipalNil
	}
	if r == nil {
		return nil, ErrReaderNil
	}

	folder, err := s.resolver.Resolve(ctx, drive.ClassificationPath(req.College, req.Course, req.Semester, req.Title))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFolderResolution, err)
	}

	obj, err := s.drive.UploadFile(ctx, folder, req.FileName, req.ContentType, r, req.Size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUpload, err)
	}

	link, err := s.drive.AllowPublicRead(ctx, obj)
	if err != nil {
		// The object exists but is not publicly viewable. Report failure and
		// leave the orphan for out-of-band cleanup.
		log.Printf("orphaned object after permission failure: key=%s err=%v", obj.Key, err)
		return nil, fmt.Errorf("%w: %v", ErrPermission, err)
	}

	name, err := s.profiles.DisplayName(ctx, p.ID)
	if err != nil {
		log.Printf("profile lookup failed for %s, using fallback name: %v", p.ID, err)
		name = ""
	}
	if name == "" {
		name = anonymousUploader
	}

	res := &model.Resource{
		Title:         req.Title,
		Subject:       req.Title, // the title doubles as the subject folder name
		College:       req.College,
		Category:      req.Category,
		Course:        req.Course,
		Semester:      req.Semester,
		ObjectLink:    link,
		UploaderID:    p.ID,
		UploaderName:  name,
		UploaderEmail: p.Email,
		CreatedAt:     time.Now().UTC(),
	}
	stored, err := s.repo.Create(ctx, res)
	if err != nil {
		// Uploaded object with no indexed record: known, accepted failure
		// mode. Logged, surfaced, never silently retried.
		log.Printf("orphaned object after persistence failure: key=%s err=%v", obj.Key, err)
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return stored, nil
}

func (s *resourceService) Search(ctx context.Context, f repository.ResourceFilter) ([]model.Resource, error) {
	items, err := s.repo.Search(ctx, f)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return items, nil
}

func (s *resourceService) ListByUploader(ctx context.Context, uploaderID string) ([]model.Resource, error) {
	if uploaderID == "" {
		return nil, ErrPrincipalNil
	}
	items, err := s.repo.ListByUploader(ctx, uploaderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return items, nil
}

func (s *resourceService) CountRead(ctx context.Context, id string) error {
	return s.increment(ctx, id, repository.CounterRead)
}

func (s *resourceService) CountDownload(ctx context.Context, id string) error {
	return s.increment(ctx, id, repository.CounterDownload)
}

func (s *resourceService) increment(ctx context.Context, id string, counter repository.Counter) error {
	if id == "" {
		return ErrNotFound
	}
	if err := s.repo.IncrementCounter(ctx, id, counter); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}
