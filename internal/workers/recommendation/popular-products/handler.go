// internal/workers/recommendation/popular-products/handler.go
package popularproducts

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"ezypc-storefront/internal/catalog"
	"ezypc-storefront/internal/common/config"
	commonerrors "ezypc-storefront/internal/common/errors"
	"ezypc-storefront/internal/common/logger"
	"ezypc-storefront/internal/common/metrics"
	"ezypc-storefront/internal/models"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const TaskType = "popular-products"

var ErrServiceRequired = errors.New("catalog service is required")

type Service interface {
	GetPopularProducts(ctx context.Context) (*models.Batch, error)
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      Service
	errorHandler *commonerrors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Service      Service
	CustomConfig *Config
	Logger       logger.Logger
}

func NewHandler(opts HandlerOptions) (*Handler, error) {
	cfg := createConfigFromAppConfig(opts.AppConfig, opts.CustomConfig)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	if opts.Service == nil {
		return nil, ErrServiceRequired
	}

	log := opts.Logger
	if log == nil {
		log = logger.NewStructured("info", "json")
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})

	return &Handler{
		config:       cfg,
		logger:       log,
		service:      opts.Service,
		errorHandler: commonerrors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.GetKey(),
		"workflowKey": job.GetProcessInstanceKey(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.GetVariables())
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err)
		return
	}

	h.completeJob(ctx, client, job, output)
}

func parseInput(variables string) (*Input, error) {
	var input Input
	if variables == "" {
		return &input, nil
	}
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, commonerrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	return &input, nil
}

// Execute loads the popular listing, served from the result cache when fresh.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	batch, err := h.service.GetPopularProducts(ctx)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		h.logger.Warn("no valid recommendations returned", nil)
		return &Output{Found: false, Recommendations: []models.Product{}}, nil
	}

	products := catalog.FilterByType(batch.Recommendations, input.Type)
	return &Output{
		Found:           len(products) > 0,
		Recommendations: products,
		Count:           len(products),
		Filters:         catalog.AvailableFilters(batch.Recommendations),
	}, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.GetKey()).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("Failed to create complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("Failed to send complete job command", map[string]interface{}{
			"jobKey": job.GetKey(),
			"error":  err.Error(),
		})
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	h.logger.Info("job completed", map[string]interface{}{
		"jobKey": job.GetKey(),
		"found":  output.Found,
		"count":  output.Count,
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := commonerrors.FromError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}
