package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/metrics"
	"ezypc-storefront/internal/common/validation"
	"ezypc-storefront/internal/models"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type Provider interface {
	Backend(ctx context.Context) (Backend, error)
}

type Gateway struct {
	provider Provider
	logger   logger.Logger
}

func New(provider Provider, log logger.Logger) *Gateway {
	return &Gateway{
		provider: provider,
		logger: log.WithFields(map[string]interface{}{
			"component": "gateway",
		}),
	}
}

// Issue sends one schema-constrained request and returns the decoded batch.
// Failures are reported through the package sentinels; ErrInvalidShape marks
// a response that parsed as JSON but does not match the response schema.
func (g *Gateway) Issue(ctx context.Context, prompt string, temperature float32) (*models.Batch, error) {
	ctx, span := otel.Tracer("ezypc-storefront/gateway").Start(ctx, "gateway.Issue",
		trace.WithSpanKind(trace.SpanKindClient))
	defer span.End()
	span.SetAttributes(attribute.Float64("genai.temperature", float64(temperature)))

	start := time.Now()
	batch, err := g.issue(ctx, prompt, temperature)
	outcome := outcomeOf(err)

	metrics.GatewayRequests.WithLabelValues(outcome).Inc()
	metrics.GatewayDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	span.SetAttributes(attribute.String("genai.outcome", outcome))

	fields := map[string]interface{}{
		"temperature": temperature,
		"outcome":     outcome,
		"durationMs":  time.Since(start).Milliseconds(),
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, outcome)
		fields["error"] = err.Error()
		g.logger.Warn("generation request failed", fields)
		return nil, err
	}

	fields["count"] = len(batch.Recommendations)
	g.logger.Info("generation request completed", fields)
	return batch, nil
}

func (g *Gateway) issue(ctx context.Context, prompt string, temperature float32) (*models.Batch, error) {
	backend, err := g.provider.Backend(ctx)
	if err != nil {
		return nil, err
	}

	text, err := backend.Generate(ctx, Request{Prompt: prompt, Temperature: temperature})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}

	return Decode(text)
}

// Decode parses and validates raw response text.
func Decode(text string) (*models.Batch, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty response from API", ErrEmptyResponse)
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(trimmed), &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	result, err := validation.ValidateBatch(doc)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return nil, fmt.Errorf("%w: %s", ErrInvalidShape, strings.Join(result.GetErrorMessages(), "; "))
	}

	var batch models.Batch
	if err := json.Unmarshal([]byte(trimmed), &batch); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidShape, err)
	}
	return &batch, nil
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "success"
	case errors.Is(err, ErrConfiguration):
		return "configuration_error"
	case errors.Is(err, ErrTransport):
		return "transport_error"
	case errors.Is(err, ErrEmptyResponse):
		return "empty_response"
	case errors.Is(err, ErrMalformedResponse):
		return "malformed_response"
	case errors.Is(err, ErrInvalidShape):
		return "invalid_shape"
	default:
		return "error"
	}
}
