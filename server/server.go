// Package server exposes the DAG classifier over HTTP using fiber.
package server

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/cors"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"github.com/gofiber/fiber/v3/middleware/requestid"
	"github.com/google/uuid"
	"github.com/meikuraledutech/dagcheck"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options configures the HTTP app.
type Options struct {
	// AllowedOrigin is the single origin allowed for CORS requests.
	AllowedOrigin string
	// RecordLimit caps the number of records listed per request.
	RecordLimit int
	Logger      *log.Logger
	// Recorder is optional. When nil, classifications are not audited and
	// the /pipelines/records routes are not registered.
	Recorder dagcheck.Recorder
}

type handler struct {
	logger      *log.Logger
	recorder    dagcheck.Recorder
	recordLimit int
	metrics     *metrics
}

// New builds the fiber app with all routes and middleware registered.
func New(opts Options) *fiber.App {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.RecordLimit <= 0 {
		opts.RecordLimit = 50
	}

	h := &handler{
		logger:      opts.Logger,
		recorder:    opts.Recorder,
		recordLimit: opts.RecordLimit,
		metrics:     newMetrics(),
	}

	app := fiber.New(fiber.Config{AppName: "dagcheck"})

	app.Use(recoverer.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger(opts.Logger))
	app.Use(cors.New(corsConfig(opts.AllowedOrigin)))

	// ── Health ────────────────────────────────────────────────────────
	app.Get("/", func(c fiber.Ctx) error {
		return c.JSON(fiber.Map{"Ping": "Pong"})
	})

	// ── Classification ────────────────────────────────────────────────
	app.Post("/pipelines/parse", h.parsePipeline)

	// ── Audit records ─────────────────────────────────────────────────
	if h.recorder != nil {
		app.Get("/pipelines/records", h.listRecords)
		app.Get("/pipelines/records/:id", h.getRecord)
	}

	// ── Metrics ───────────────────────────────────────────────────────
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(h.metrics.registry, promhttp.HandlerOpts{})))

	return app
}

// corsConfig allows the configured origin with every method and header.
// Browsers reject credentials on a wildcard origin, so "*" disables them.
func corsConfig(origin string) cors.Config {
	return cors.Config{
		AllowOrigins:     []string{origin},
		AllowCredentials: origin != "*",
		AllowMethods: []string{
			fiber.MethodGet, fiber.MethodPost, fiber.MethodHead, fiber.MethodPut,
			fiber.MethodDelete, fiber.MethodPatch, fiber.MethodOptions,
		},
	}
}

// requestLogger logs one line per request after the handler chain has run.
func requestLogger(logger *log.Logger) fiber.Handler {
	return func(c fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		kv := []any{
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start).Round(time.Microsecond),
			"request_id", requestid.FromContext(c),
		}
		if err != nil {
			kv = append(kv, "err", err)
		}
		logger.Info("request", kv...)
		return err
	}
}
