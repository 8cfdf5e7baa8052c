package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	driveMocks "studyvault/internal/drive/mocks"
	identityMocks "studyvault/internal/identity/mocks"
	"studyvault/internal/http/middleware"
	"studyvault/internal/model"
	"studyvault/internal/repository"
	"studyvault/internal/service"
	serviceMocks "studyvault/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// pingFunc adapts a func to the Pinger interface.
type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

// uploadForm builds a valid multipart upload body.
func uploadForm(t *testing.T, fields map[string]string, fileNames ...string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	for _, name := range fileNames {
		part, err := writer.CreateFormFile("file", name)
		require.NoError(t, err)
		part.Write([]byte("file contents"))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func validFields() map[string]string {
	return map[string]string{
		"title":    "Signals",
		"college":  "Engineering",
		"category": "Notes",
		"course":   "EE",
		"semester": "3",
	}
}

func authedApp(svc service.ResourceService, route func(app *fiber.App, auth fiber.Handler)) (*fiber.App, *identityMocks.MockVerifier) {
	verifier := new(identityMocks.MockVerifier)
	app := fiber.New()
	route(app, middleware.RequireAuth(verifier))
	return app, verifier
}

func TestHealthCheck(t *testing.T) {
	t.Run("healthy", func(t *testing.T) {
		mockDrive := new(driveMocks.MockDrive)
		mockDrive.On("Health", mock.Anything).Return(nil)

		app := fiber.New()
		app.Get("/health", HealthCheck(pingFunc(func(ctx context.Context) error { return nil }), mockDrive))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("document store down", func(t *testing.T) {
		mockDrive := new(driveMocks.MockDrive)

		app := fiber.New()
		app.Get("/health", HealthCheck(pingFunc(func(ctx context.Context) error { return errors.New("db error") }), mockDrive))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		mockDrive.AssertNotCalled(t, "Health", mock.Anything)
	})

	t.Run("object store down", func(t *testing.T) {
		mockDrive := new(driveMocks.MockDrive)
		mockDrive.On("Health", mock.Anything).Return(errors.New("unreachable"))

		app := fiber.New()
		app.Get("/health", HealthCheck(pingFunc(func(ctx context.Context) error { return nil }), mockDrive))

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Service unavailable", body.Error)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestUploadResource(t *testing.T) {
	principal := &model.Principal{ID: "user-1", Email: "u@x.edu"}

	t.Run("success returns the public link", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/upload", auth, UploadResource(mockSvc))
		})
		verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)

		stored := &model.Resource{ID: "res-1", ObjectLink: "https://files.example.com/x"}
		mockSvc.On("Upload", mock.Anything, principal, mock.MatchedBy(func(r *model.UploadRequest) bool {
			return r.Title == "Signals" && r.Semester == "3" && r.FileName == "notes.pdf"
		}), mock.Anything).Return(stored, nil).Once()

		body, contentType := uploadForm(t, validFields(), "notes.pdf")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result map[string]any
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, true, result["success"])
		assert.Equal(t, "https://files.example.com/x", result["link"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("missing token rejected before any work", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/upload", auth, UploadResource(mockSvc))
		})

		body, contentType := uploadForm(t, validFields(), "notes.pdf")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		verifier.AssertNotCalled(t, "Verify", mock.Anything, mock.Anything)
	})

	t.Run("missing field is a 400 with no pipeline call", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/upload", auth, UploadResource(mockSvc))
		})
		verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)

		fields := validFields()
		delete(fields, "college")
		body, contentType := uploadForm(t, fields, "notes.pdf")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("no file part is a 400", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/upload", auth, UploadResource(mockSvc))
		})
		verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)

		body, contentType := uploadForm(t, validFields())
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("two file parts are a 400", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/upload", auth, UploadResource(mockSvc))
		})
		verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)

		body, contentType := uploadForm(t, validFields(), "a.pdf", "b.pdf")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("pipeline failure maps to one generic message", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/upload", auth, UploadResource(mockSvc))
		})
		verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)
		mockSvc.On("Upload", mock.Anything, principal, mock.Anything, mock.Anything).
			Return(nil, service.ErrFolderResolution).Once()

		body, contentType := uploadForm(t, validFields(), "notes.pdf")
		req := httptest.NewRequest(http.MethodPost, "/upload", body)
		req.Header.Set("Content-Type", contentType)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

		var body2 errorPayload
		json.NewDecoder(resp.Body).Decode(&body2)
		assert.False(t, body2.Success)
		assert.Equal(t, "Upload failed", body2.Error)
		mockSvc.AssertExpectations(t)
	})
}

func TestSearchResources(t *testing.T) {
	t.Run("filters pass through from the query string", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app := fiber.New()
		app.Get("/resources", SearchResources(mockSvc))

		expected := []model.Resource{{ID: "res-1", Title: "Signals"}}
		mockSvc.On("Search", mock.Anything, repository.ResourceFilter{
			College:  "Engineering",
			Semester: "3",
		}).Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/resources?college=Engineering&semester=3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result struct {
			Success bool             `json:"success"`
			Data    []model.Resource `json:"data"`
		}
		json.NewDecoder(resp.Body).Decode(&result)
		assert.True(t, result.Success)
		assert.Len(t, result.Data, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("no match is an empty list, not an error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app := fiber.New()
		app.Get("/resources", SearchResources(mockSvc))

		mockSvc.On("Search", mock.Anything, repository.ResourceFilter{}).
			Return([]model.Resource{}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/resources", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var raw map[string]json.RawMessage
		json.NewDecoder(resp.Body).Decode(&raw)
		assert.JSONEq(t, `[]`, string(raw["data"]))
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app := fiber.New()
		app.Get("/resources", SearchResources(mockSvc))

		mockSvc.On("Search", mock.Anything, mock.Anything).
			Return(nil, errors.New("query failed")).Once()

		req := httptest.NewRequest(http.MethodGet, "/resources", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestMyUploads(t *testing.T) {
	principal := &model.Principal{ID: "user-1", Email: "u@x.edu"}

	mockSvc := new(serviceMocks.MockResourceService)
	app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
		app.Get("/my-uploads", auth, MyUploads(mockSvc))
	})
	verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)

	expected := []model.Resource{{ID: "res-1", UploaderID: "user-1"}}
	mockSvc.On("ListByUploader", mock.Anything, "user-1").Return(expected, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/my-uploads", nil)
	req.Header.Set("Authorization", "Bearer tok")
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result struct {
		Success bool             `json:"success"`
		Data    []model.Resource `json:"data"`
	}
	json.NewDecoder(resp.Body).Decode(&result)
	assert.True(t, result.Success)
	assert.Len(t, result.Data, 1)
	mockSvc.AssertExpectations(t)
}

func TestCountRead(t *testing.T) {
	mockSvc := new(serviceMocks.MockResourceService)
	app := fiber.New()
	app.Post("/resources/:id/read", CountRead(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("CountRead", mock.Anything, "res-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/resources/res-1/read", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("gone resource", func(t *testing.T) {
		mockSvc.On("CountRead", mock.Anything, "gone").Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/resources/gone/read", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)

		var body errorPayload
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "Resource not found", body.Error)
	})

	t.Run("store error", func(t *testing.T) {
		mockSvc.On("CountRead", mock.Anything, "res-1").Return(errors.New("update failed")).Once()

		req := httptest.NewRequest(http.MethodPost, "/resources/res-1/read", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})
}

func TestCountDownload(t *testing.T) {
	principal := &model.Principal{ID: "user-1"}

	t.Run("success", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, verifier := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/resources/:id/download", auth, CountDownload(mockSvc))
		})
		verifier.On("Verify", mock.Anything, "tok").Return(principal, nil)
		mockSvc.On("CountDownload", mock.Anything, "res-1").Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/resources/res-1/download", nil)
		req.Header.Set("Authorization", "Bearer tok")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("requires a token", func(t *testing.T) {
		mockSvc := new(serviceMocks.MockResourceService)
		app, _ := authedApp(mockSvc, func(app *fiber.App, auth fiber.Handler) {
			app.Post("/resources/:id/download", auth, CountDownload(mockSvc))
		})

		req := httptest.NewRequest(http.MethodPost, "/resources/res-1/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
		mockSvc.AssertNotCalled(t, "CountDownload", mock.Anything, "res-1")
	})
}

func TestRouting(t *testing.T) {
	app := fiber.New(fiber.Config{
		ErrorHandler: ErrorHandler(),
	})

	mockSvc := new(serviceMocks.MockResourceService)
	mockDrive := new(driveMocks.MockDrive)
	verifier := new(identityMocks.MockVerifier)
	RegisterRoutes(app, pingFunc(func(ctx context.Context) error { return nil }), mockDrive, mockSvc, verifier)

	t.Run("openapi spec served from the embedded copy", func(t *testing.T) {
		// Must not depend on the process working directory.
		req := httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		body := new(bytes.Buffer)
		body.ReadFrom(resp.Body)
		assert.Contains(t, body.String(), "openapi: 3.0.3")
		assert.Contains(t, body.String(), "/upload")
	})

	t.Run("not found route", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/non-existent", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Not found", res.Error)
	})

	t.Run("method not allowed", func(t *testing.T) {
		// Health endpoint only allows GET
		req := httptest.NewRequest(http.MethodPost, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "Method not allowed", res.Error)
	})
}
