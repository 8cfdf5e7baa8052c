package handler

import (
	"github.com/gofiber/fiber/v2"

	"studyvault/docs"
	"studyvault/internal/drive"
	"studyvault/internal/http/middleware"
	"studyvault/internal/identity"
	"studyvault/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app. Handlers
// stay thin; the pipeline logic lives in the service layer.
func RegisterRoutes(app *fiber.App, p Pinger, d drive.Drive, svc service.ResourceService, verifier identity.Verifier) {
	// Serve the embedded OpenAPI spec and a minimal Swagger UI page
	app.Get("/openapi.yaml", func(c *fiber.Ctx) error {
		c.Type("yaml")
		return c.Send(docs.OpenAPI)
	})
	app.Get("/docs", func(c *fiber.Ctx) error {
		html := `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>API Docs</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css" />
</head>
<body>
  <div id="swagger-ui"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    window.ui = SwaggerUIBundle({
      url: '/openapi.yaml',
      dom_id: '#swagger-ui',
      presets: [SwaggerUIBundle.presets.apis],
      layout: 'BaseLayout'
    });
  </script>
</body>
</html>`
		return c.Type("html").SendString(html)
	})

	// Health endpoint checks both backing stores
	app.Get("/health", HealthCheck(p, d))

	// Bare liveness probe
	app.Get("/healthz", LivenessProbe())

	// Public surface
	app.Get("/resources", SearchResources(svc))
	app.Post("/resources/:id/read", CountRead(svc))

	// Authenticated surface
	auth := middleware.RequireAuth(verifier)
	app.Post("/upload", auth, UploadResource(svc))
	app.Post("/resources/:id/download", auth, CountDownload(svc))
	app.Get("/my-uploads", auth, MyUploads(svc))
}
