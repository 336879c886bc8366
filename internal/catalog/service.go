package catalog

import (
	"context"
	"errors"

	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/metrics"
	"ezypc-storefront/internal/gateway"
	"ezypc-storefront/internal/models"
	"ezypc-storefront/internal/prompt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/singleflight"
)

const (
	TemperaturePopular float32 = 0.7
	TemperatureGuided  float32 = 0.5
	TemperatureSimilar float32 = 0.8

	KindPopular = "popular"
	KindGuided  = "guided"
	KindSimilar = "similar"
)

type Issuer interface {
	Issue(ctx context.Context, prompt string, temperature float32) (*models.Batch, error)
}

type ResultCache interface {
	Read(ctx context.Context) (*models.Batch, bool)
	Write(ctx context.Context, batch *models.Batch) error
}

// Service exposes the three recommendation operations. A nil batch with a nil
// error means the model answered with a shape-invalid document.
type Service struct {
	issuer  Issuer
	cache   ResultCache
	logger  logger.Logger
	sfGroup singleflight.Group
}

func NewService(issuer Issuer, cache ResultCache, log logger.Logger) *Service {
	return &Service{
		issuer: issuer,
		cache:  cache,
		logger: log.WithFields(map[string]interface{}{
			"component": "catalog",
		}),
	}
}

// GetPopularProducts serves the storefront listing from cache when fresh.
// Concurrent misses share one upstream request. Only a valid batch is cached.
func (s *Service) GetPopularProducts(ctx context.Context) (*models.Batch, error) {
	ctx, span := otel.Tracer("ezypc-storefront/catalog").Start(ctx, "catalog.GetPopularProducts")
	defer span.End()

	if batch, ok := s.cache.Read(ctx); ok {
		span.SetAttributes(attribute.Bool("cache.hit", true))
		metrics.RecommendationRequests.WithLabelValues(KindPopular, "cache_hit").Inc()
		return batch, nil
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	val, err, shared := s.sfGroup.Do(KindPopular, func() (any, error) {
		if batch, ok := s.cache.Read(ctx); ok {
			return batch, nil
		}

		batch, err := s.issuer.Issue(ctx, prompt.PopularProducts(), TemperaturePopular)
		if err != nil {
			return nil, err
		}

		if err := s.cache.Write(ctx, batch); err != nil {
			s.logger.Warn("failed to cache popular products", map[string]interface{}{
				"error": err.Error(),
			})
		} else {
			s.logger.Info("fetched popular products and cached them", map[string]interface{}{
				"count": len(batch.Recommendations),
			})
		}
		return batch, nil
	})
	span.SetAttributes(attribute.Bool("singleflight.shared", shared))

	if err != nil {
		return s.result(KindPopular, nil, err)
	}
	return s.result(KindPopular, val.(*models.Batch), nil)
}

func (s *Service) GetPCRecommendation(ctx context.Context, useCase models.UseCase, answers []models.Answer) (*models.Batch, error) {
	ctx, span := otel.Tracer("ezypc-storefront/catalog").Start(ctx, "catalog.GetPCRecommendation")
	defer span.End()
	span.SetAttributes(
		attribute.String("useCase", string(useCase)),
		attribute.Int("answers", len(answers)),
	)

	batch, err := s.issuer.Issue(ctx, prompt.GuidedRecommendation(useCase, answers), TemperatureGuided)
	return s.result(KindGuided, batch, err)
}

func (s *Service) GetSimilarProducts(ctx context.Context, product models.Product, excludeTitles []string) (*models.Batch, error) {
	ctx, span := otel.Tracer("ezypc-storefront/catalog").Start(ctx, "catalog.GetSimilarProducts")
	defer span.End()
	span.SetAttributes(attribute.Int("excludeTitles", len(excludeTitles)))

	batch, err := s.issuer.Issue(ctx, prompt.SimilarProducts(product, excludeTitles), TemperatureSimilar)
	return s.result(KindSimilar, batch, err)
}

func (s *Service) result(kind string, batch *models.Batch, err error) (*models.Batch, error) {
	switch {
	case errors.Is(err, gateway.ErrInvalidShape):
		metrics.RecommendationRequests.WithLabelValues(kind, "invalid_shape").Inc()
		s.logger.Warn("discarding shape-invalid response", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return nil, nil
	case err != nil:
		metrics.RecommendationRequests.WithLabelValues(kind, "error").Inc()
		s.logger.Error("recommendation request failed", map[string]interface{}{
			"kind":  kind,
			"error": err.Error(),
		})
		return nil, err
	}

	metrics.RecommendationRequests.WithLabelValues(kind, "success").Inc()
	return batch, nil
}
