package handler

import (
	"errors"
	"fmt"
	"io"

	"github.com/gofiber/fiber/v2"

	"studyvault/internal/model"
)

// ErrMalformedRequest marks upload requests rejected at the parsing stage,
// before any external system is touched.
var ErrMalformedRequest = errors.New("malformed upload request")

// parseUploadForm reads the multipart upload form into a validated
// UploadRequest and opens the file part for streaming. When a text field is
// repeated, the first occurrence wins. Exactly one "file" part is accepted.
// The caller owns closing the returned reader.
func parseUploadForm(c *fiber.Ctx) (*model.UploadRequest, io.ReadCloser, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: expected multipart form data", ErrMalformedRequest)
	}

	first := func(name string) string {
		if vs := form.Value[name]; len(vs) > 0 {
			return vs[0]
		}
		return ""
	}

	files := form.File["file"]
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("%w: file part is required", ErrMalformedRequest)
	}
	if len(files) > 1 {
		return nil, nil, fmt.Errorf("%w: exactly one file part is allowed", ErrMalformedRequest)
	}
	fh := files[0]

	contentType := fh.Header.Get(fiber.HeaderContentType)
	if contentType == "" {
		contentType = fiber.MIMEOctetStream
	}

	req := &model.UploadRequest{
		Title:       first("title"),
		College:     first("college"),
		Category:    first("category"),
		Course:      first("course"),
		Semester:    first("semester"),
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
	}
	if err := req.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%w: %v", ErrMalformedRequest, err)
	}

	f, err := fh.Open()
	if err != nil {
		return nil, nil, fmt.Errorf("%w: cannot open uploaded file", ErrMalformedRequest)
	}
	return req, f, nil
}
