package api

import (
	"context"
	"time"

	"ezypc-storefront/internal/common/config"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/observability"
	"ezypc-storefront/internal/models"
	"ezypc-storefront/internal/usedparts"
	"ezypc-storefront/pkg/registry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CatalogService interface {
	GetPopularProducts(ctx context.Context) (*models.Batch, error)
	GetPCRecommendation(ctx context.Context, useCase models.UseCase, answers []models.Answer) (*models.Batch, error)
	GetSimilarProducts(ctx context.Context, product models.Product, excludeTitles []string) (*models.Batch, error)
}

type UsedPartsService interface {
	List(ctx context.Context) ([]models.UsedPart, error)
	Get(ctx context.Context, id string) (*models.UsedPart, error)
	Match(ctx context.Context, components []models.ComponentSpec) (*models.UsedPart, error)
	CreateInquiry(ctx context.Context, partID string, req usedparts.InquiryRequest) (*models.Inquiry, error)
}

type QuestionRegistry interface {
	UseCaseEntries() []registry.UseCaseEntry
	Questions(useCase models.UseCase) ([]models.Question, error)
	ValidateAnswers(useCase models.UseCase, answers []models.Answer) error
}

type Dependencies struct {
	Catalog       CatalogService
	UsedParts     UsedPartsService
	Questions     QuestionRegistry
	Observability *observability.Observability
	Logger        logger.Logger
}

// Server is the storefront HTTP API.
type Server struct {
	app       *fiber.App
	catalog   CatalogService
	usedParts UsedPartsService
	questions QuestionRegistry
	obs       *observability.Observability
	logger    logger.Logger
}

func NewServer(deps Dependencies, cfg config.HTTPConfig) *Server {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	s := &Server{
		catalog:   deps.Catalog,
		usedParts: deps.UsedParts,
		questions: deps.Questions,
		obs:       deps.Observability,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "ezypc-storefront",
		DisableStartupMessage: true,
		ReadTimeout:           config.GetDuration(cfg.ReadTimeout),
		WriteTimeout:          config.GetDuration(cfg.WriteTimeout),
		ErrorHandler:          s.errorHandler,
	})

	s.app.Use(recover.New())
	s.app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept",
	}))
	s.app.Use(s.requestLogger)

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.app.Get("/health", s.health)
	s.app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := s.app.Group("/api")

	products := api.Group("/products")
	products.Get("/", s.listProducts)
	products.Get("/popular", s.popularProducts)
	products.Post("/similar", s.similarProducts)
	products.Post("/detail", s.productDetail)

	api.Post("/recommendations", s.recommendations)

	wizard := api.Group("/wizard")
	wizard.Get("/use-cases", s.useCases)
	wizard.Get("/questions/:useCase", s.questionsFor)

	parts := api.Group("/used-parts")
	parts.Get("/", s.listUsedParts)
	parts.Get("/:id", s.getUsedPart)
	parts.Post("/:id/inquiries", s.createInquiry)
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	s.logger.Info("HTTP server listening", map[string]interface{}{"address": addr})
	return s.app.Listen(addr)
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	status := c.Response().StatusCode()
	if err != nil {
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}
	}

	fields := map[string]interface{}{
		"method":     c.Method(),
		"path":       c.Path(),
		"status":     status,
		"durationMs": time.Since(start).Milliseconds(),
	}
	if status >= fiber.StatusInternalServerError {
		s.logger.Warn("request failed", fields)
	} else {
		s.logger.Debug("request served", fields)
	}
	return err
}

func (s *Server) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}
