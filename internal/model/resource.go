package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Resource is the persisted record for one uploaded study file.
// Classification fields are set once at creation; the counters are only ever
// mutated through atomic server-side increments, never read-modify-write.
type Resource struct {
	ID            string    `bson:"_id,omitempty" json:"id"`
	Title         string    `bson:"title" json:"title"`
	Subject       string    `bson:"subject" json:"subject"`
	College       string    `bson:"college" json:"college"`
	Category      string    `bson:"category" json:"category"`
	Course        string    `bson:"course" json:"course"`
	Semester      string    `bson:"semester" json:"semester"`
	ObjectLink    string    `bson:"drive_link" json:"drive_link"`
	UploaderID    string    `bson:"uploader_id" json:"uploader_id"`
	UploaderName  string    `bson:"uploader" json:"uploader"`
	UploaderEmail string    `bson:"uploader_email" json:"uploader_email"`
	CreatedAt     time.Time `bson:"created_at" json:"created_at"`
	DownloadCount int64     `bson:"download_count" json:"download_count"`
	ReadCount     int64     `bson:"read_count" json:"read_count"`
}

// Principal is the verified identity of a caller, derived from a bearer
// credential by the identity layer. It is never persisted as-is.
type Principal struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name,omitempty"`
}

// UploadRequest is the strongly-typed result of parsing a multipart upload
// request at the HTTP boundary. Field validation happens here, before any
// external call is made.
type UploadRequest struct {
	Title       string
	College     string
	Category    string
	Course      string
	Semester    string
	FileName    string
	ContentType string
	Size        int64
}

// Validate rejects requests with missing classification fields or a
// nonsensical semester before the pipeline touches any external system.
func (r *UploadRequest) Validate() error {
	required := map[string]string{
		"title":    r.Title,
		"college":  r.College,
		"category": r.Category,
		"course":   r.Course,
		"semester": r.Semester,
	}
	for name, v := range required {
		if strings.TrimSpace(v) == "" {
			return fmt.Errorf("field %q is required", name)
		}
	}
	if n, err := strconv.Atoi(r.Semester); err != nil || n < 1 {
		return fmt.Errorf("field \"semester\" must be a positive number, got %q", r.Semester)
	}
	if r.FileName == "" {
		return fmt.Errorf("file name is required")
	}
	if r.Size < 0 {
		return fmt.Errorf("file size must not be negative")
	}
	return nil
}
