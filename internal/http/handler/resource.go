package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"studyvault/internal/http/middleware"
	"studyvault/internal/repository"
	"studyvault/internal/service"
)

// UploadResource handles the multipart upload endpoint. The verified
// principal is taken from context locals set by middleware.RequireAuth.
func UploadResource(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := middleware.PrincipalFromCtx(c)
		if p == nil {
			return writeError(c, fiber.StatusUnauthorized, "Unauthorized: no token")
		}

		req, file, err := parseUploadForm(c)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, err.Error())
		}
		defer file.Close()

		res, err := svc.Upload(c.UserContext(), p, req, file)
		if err != nil {
			// The pipeline logs the specific failed step; the caller gets one
			// generic message regardless of which step broke.
			return writeError(c, fiber.StatusInternalServerError, "Upload failed")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"link":    res.ObjectLink,
		})
	}
}

// SearchResources handles the public listing endpoint. All filters are
// optional exact-match query parameters.
func SearchResources(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter := repository.ResourceFilter{
			College:  c.Query("college"),
			Category: c.Query("category"),
			Course:   c.Query("course"),
			Semester: c.Query("semester"),
			Subject:  c.Query("subject"),
		}

		items, err := svc.Search(c.UserContext(), filter)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to fetch resources")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    items,
		})
	}
}

// MyUploads lists the calling user's own uploads, newest first.
func MyUploads(svc service.ResourceService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p := middleware.PrincipalFromCtx(c)
		if p == nil {
			return writeError(c, fiber.StatusUnauthorized, "Unauthorized: no token")
		}

		items, err := svc.ListByUploader(c.UserContext(), p.ID)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "Failed to fetch resources")
		}

		return c.JSON(fiber.Map{
			"success": true,
			"data":    items,
		})
	}
}

// CountRead applies one read-count increment to the resource.
func CountRead(svc service.ResourceService) fiber.Handler {
	return countHandler(func(c *fiber.Ctx, id string) error {
		return svc.CountRead(c.UserContext(), id)
	})
}

// CountDownload applies one download-count increment to the resource.
func CountDownload(svc service.ResourceService) fiber.Handler {
	return countHandler(func(c *fiber.Ctx, id string) error {
		return svc.CountDownload(c.UserContext(), id)
	})
}

func countHandler(count func(c *fiber.Ctx, id string) error) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")
		if err := count(c, id); err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "Resource not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "Failed to update counter")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
