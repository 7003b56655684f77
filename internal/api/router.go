package api

import (
	"io/fs"
	"net/http"

	"hiper-bot/docs"
	"hiper-bot/internal/api/handlers"
	"hiper-bot/pkg/auth"
	"hiper-bot/pkg/config"
	"hiper-bot/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

// Handlers groups everything SetupRouter mounts.
type Handlers struct {
	Session   *handlers.SessionHandler
	Chat      *handlers.ChatHandler
	Relevance *handlers.RelevanceHandler
	Stats     *handlers.StatsHandler
}

func SetupRouter(h Handlers, static fs.FS, serverCfg *config.ServerConfig, jwtManager *auth.JWTManager, appLogger *zap.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:  serverCfg.ReadTimeout,
		WriteTimeout: serverCfg.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			if code == fiber.StatusInternalServerError {
				appLogger.Error("Unhandled request error", zap.Error(err), zap.String("path", c.Path()))
				return c.Status(code).JSON(fiber.Map{
					"error": "Internal server error",
				})
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	_ = docs.SwaggerInfo // registers the swagger spec
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Web interface
	if static != nil {
		root := http.FS(static)
		app.Get("/", func(c *fiber.Ctx) error {
			return filesystem.SendFile(c, root, "index.html")
		})
		app.Use("/static", filesystem.New(filesystem.Config{
			Root: root,
		}))
	} else {
		appLogger.Warn("Web interface disabled, no static assets provided")
	}

	api := app.Group("/api/v1")
	api.Post("/sessions", h.Session.CreateSession)
	api.Post("/relevance", h.Relevance.CheckRelevance)
	api.Get("/stats", h.Stats.ListLookups)

	// Session routes
	requireSession := middleware.SessionMiddleware(jwtManager, appLogger)
	api.Delete("/sessions", requireSession, h.Session.DeleteSession)
	api.Post("/messages", requireSession, h.Chat.SendMessage)

	conversations := api.Group("/conversations", requireSession)
	conversations.Get("", h.Chat.ListConversations)
	conversations.Post("/new", h.Chat.NewConversation)
	conversations.Post("/select", h.Chat.SelectConversation)
	conversations.Get("/current", h.Chat.CurrentConversation)

	return app
}
