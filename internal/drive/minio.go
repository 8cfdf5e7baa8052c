package drive

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"studyvault/internal/config"
)

const (
	// folderMarker is the zero-byte object that materializes a folder level
	// in the flat S3 namespace. Its user metadata carries the folder id and
	// the trashed flag.
	folderMarker = ".folder"

	// Metadata keys as canonicalized by the S3 transport.
	metaFolderID = "Folder-Id"
	metaTrashed  = "Trashed"
)

// minioDrive implements the Drive interface on an S3-compatible backend
// (MinIO, AWS S3, etc.). It is safe for concurrent use by multiple goroutines.
type minioDrive struct {
	client *minio.Client
	bucket string
	prefix string
}

// NewMinIO creates a hierarchical object store client backed by MinIO.
// It validates connectivity and ensures the bucket exists (creates it if missing).
func NewMinIO(cfg config.MinIOConfig) (Drive, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("minio endpoint is required")
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("minio credentials are required")
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("minio bucket is required")
	}
	if cfg.RootPrefix == "" {
		return nil, fmt.Errorf("minio root prefix is required")
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	d := &minioDrive{client: cli, bucket: cfg.Bucket, prefix: cfg.RootPrefix}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Ensure bucket exists.
	exists, err := cli.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket existence: %w", err)
	}
	if !exists {
		if err := cli.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return d, nil
}

func (d *minioDrive) Root() Folder {
	return Folder{ID: "root", Path: d.prefix}
}

// childPath addresses a named child under a parent folder. Segment names come
// from user input; path separators inside a name must not create extra levels.
func childPath(parent Folder, name string) string {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	return path.Join(parent.Path, name)
}

// FindFolder is a point lookup on the folder marker. Trashed folders are
// treated as absent, matching the soft-delete semantics of the store.
func (d *minioDrive) FindFolder(ctx context.Context, name string, parent Folder) (*Folder, error) {
	p := childPath(parent, name)
	st, err := d.client.StatObject(ctx, d.bucket, path.Join(p, folderMarker), minio.StatObjectOptions{})
	if err != nil {
		if resp := minio.ToErrorResponse(err); resp.Code == "NoSuchKey" {
			return nil, nil
		}
		return nil, err
	}
	if st.UserMetadata[metaTrashed] == "true" {
		return nil, nil
	}
	id := st.UserMetadata[metaFolderID]
	if id == "" {
		// Marker written by an external tool; the path still identifies it.
		id = p
	}
	return &Folder{ID: id, Path: p}, nil
}

func (d *minioDrive) CreateFolder(ctx context.Context, name string, parent Folder) (Folder, error) {
	p := childPath(parent, name)
	id := uuid.NewString()
	_, err := d.client.PutObject(ctx, d.bucket, path.Join(p, folderMarker), bytes.NewReader(nil), 0,
		minio.PutObjectOptions{
			ContentType:  "application/x-directory",
			UserMetadata: map[string]string{metaFolderID: id},
		})
	if err != nil {
		return Folder{}, err
	}
	return Folder{ID: id, Path: p}, nil
}

// UploadFile streams the payload into the folder using streaming I/O only.
// The stream is consumed exactly once.
func (d *minioDrive) UploadFile(ctx context.Context, parent Folder, name, contentType string, r io.Reader, size int64) (ObjectRef, error) {
	if r == nil {
		return ObjectRef{}, fmt.Errorf("reader is nil")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	key := childPath(parent, name)
	_, err := d.client.PutObject(ctx, d.bucket, key, r, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return ObjectRef{}, err
	}
	return ObjectRef{Key: key}, nil
}

// AllowPublicRead grants anonymous read on the resource tree via bucket
// policy. The grant covers the whole root prefix, so repeated calls are
// idempotent; the per-object link is composed from the endpoint and key.
func (d *minioDrive) AllowPublicRead(ctx context.Context, obj ObjectRef) (string, error) {
	policy := fmt.Sprintf(`{
  "Version": "2012-10-17",
  "Statement": [
    {
      "Effect": "Allow",
      "Principal": {"AWS": ["*"]},
      "Action": ["s3:GetObject"],
      "Resource": ["arn:aws:s3:::%s/%s/*"]
    }
  ]
}`, d.bucket, d.prefix)
	if err := d.client.SetBucketPolicy(ctx, d.bucket, policy); err != nil {
		return "", err
	}
	return d.publicLink(obj.Key), nil
}

func (d *minioDrive) publicLink(key string) string {
	u := *d.client.EndpointURL()
	u.Path = path.Join(u.Path, d.bucket, key)
	u.RawQuery = url.Values{}.Encode()
	return u.String()
}

// Health verifies connectivity and authentication by checking the bucket.
func (d *minioDrive) Health(ctx context.Context) error {
	exists, err := d.client.BucketExists(ctx, d.bucket)
	if err != nil {
		return fmt.Errorf("object store health check: %w", err)
	}
	if !exists {
		return fmt.Errorf("object store health check: bucket %q is missing", d.bucket)
	}
	return nil
}
