package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

// NewServer crea la app Fiber con el stack de middlewares común y registra las rutas.
// extra se instala antes de las rutas (p. ej. Swagger UI en cmd/api).
func NewServer(deps RouterDeps, extra ...fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.ServiceName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: ErrorHandler(deps.Log.Component("http")),
	})
	app.Use(recover.New())
	app.Use(RequestID())
	app.Use(RequestLogger(deps.Log.Component("access")))
	app.Use(Observe(deps.Metrics))
	for _, h := range extra {
		app.Use(h)
	}
	Router(app, deps)
	return app
}
