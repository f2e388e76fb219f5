package http

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	fiberSwagger "github.com/swaggo/fiber-swagger"
	"go.uber.org/zap"

	"github.com/pereval-service/internal/config"
	"github.com/pereval-service/internal/delivery/http/handler"
	"github.com/pereval-service/internal/delivery/http/middleware"
	"github.com/pereval-service/internal/pkg/errors"
	"github.com/pereval-service/internal/pkg/utils"
)

const submitDataPath = "/submitData"

// Server - HTTP сервер на основе Fiber
type Server struct {
	app    *fiber.App
	config *config.Config
	logger *zap.Logger

	// Handlers
	perevalHandler *handler.PerevalHandler
	healthHandler  *handler.HealthHandler
}

// NewServer - создание нового HTTP сервера
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	perevalHandler *handler.PerevalHandler,
	healthHandler *handler.HealthHandler,
) *Server {
	app := fiber.New(fiber.Config{
		AppName:      "Pereval API",
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		BodyLimit:    cfg.Server.BodyLimitMB * 1024 * 1024,
		ErrorHandler: customErrorHandler(logger),
	})

	s := &Server{
		app:            app,
		config:         cfg,
		logger:         logger,
		perevalHandler: perevalHandler,
		healthHandler:  healthHandler,
	}

	s.setupMiddlewares()
	s.setupRoutes()

	return s
}

// setupMiddlewares - настройка middleware
func (s *Server) setupMiddlewares() {
	s.app.Use(middleware.RequestID())
	s.app.Use(middleware.Recovery(s.logger))
	s.app.Use(middleware.Logger(s.logger))
	s.app.Use(middleware.CORS(s.config.Server.AllowOrigins))
	s.app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed,
	}))
}

// setupRoutes - настройка маршрутов
func (s *Server) setupRoutes() {
	// Swagger documentation route
	s.app.Get("/swagger/*", fiberSwagger.WrapHandler)

	s.app.Get("/health", s.healthHandler.Health)

	// Pereval routes
	s.app.Get(submitDataPath, s.perevalHandler.List)
	s.app.Post(submitDataPath, s.perevalHandler.Submit)
	s.app.Get(submitDataPath+"/:id", s.perevalHandler.Get)
	s.app.Patch(submitDataPath+"/:id", s.perevalHandler.Update)
	s.app.Patch(submitDataPath+"/:id/status", s.perevalHandler.SetStatus)

	// Media: изображения из БД, затем файлы с диска
	s.app.Get("/media/images/:id", s.perevalHandler.GetImage)
	if s.config.Media.Storage == config.MediaStorageFilesystem {
		s.app.Static(s.config.Media.URL, s.config.Media.Root)
	}
}

// App возвращает экземпляр fiber (используется в тестах)
func (s *Server) App() *fiber.App {
	return s.app
}

// Start - запуск HTTP сервера
func (s *Server) Start() error {
	addr := s.config.GetServerAddr()
	s.logger.Info("Starting HTTP server", zap.String("address", addr))
	return s.app.Listen(addr)
}

// Shutdown - graceful shutdown HTTP сервера
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down HTTP server")
	return s.app.ShutdownWithContext(ctx)
}

// customErrorHandler - кастомный обработчик ошибок. Формат ответа совпадает с
// форматом маршрута: POST /submitData - {status,message,id}, PATCH - {state,message},
// остальное - {status,message}.
func customErrorHandler(logger *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		appErr := errors.ErrInternalServer
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			appErr = errors.HTTP(e.Code, e.Message)
			status = e.Code
		}

		if status >= fiber.StatusInternalServerError {
			logger.Error("HTTP Error",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.Int("status", status),
				zap.Error(err),
			)
		}

		if strings.HasPrefix(c.Path(), submitDataPath) {
			switch c.Method() {
			case fiber.MethodPost:
				return utils.SendSubmitError(c, appErr)
			case fiber.MethodPatch:
				return utils.SendStateError(c, appErr)
			}
		}
		return utils.SendError(c, appErr)
	}
}
