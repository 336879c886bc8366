// internal/workers/recommendation/similar-products/handler.go
package similarproducts

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

const TaskType = "similar-products"

var ErrServiceRequired = errors.New("catalog service is required")

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      catalog.SimilarSource
	errorHandler *commonerrors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Service      catalog.SimilarSource
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
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, commonerrors.NewInvalidInputError(fmt.Sprintf("parse input: %v", err))
	}
	if input.Product.Title == "" {
		return nil, commonerrors.NewInvalidInputError("product.title is required")
	}
	return &input, nil
}

// Execute fetches one page of alternatives to the reference product.
// HasMore is false once the model returns nothing new.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	exclude := input.ExcludeTitles
	if len(exclude) == 0 {
		exclude = catalog.SimilarExcludeTitles(input.Product, nil)
	}

	batch, err := h.service.GetSimilarProducts(ctx, input.Product, exclude)
	if err != nil {
		return nil, err
	}
	if batch == nil || len(batch.Recommendations) == 0 {
		h.logger.Info("no further similar products", map[string]interface{}{
			"product":  input.Product.Title,
			"excluded": len(exclude),
		})
		return &Output{Found: false, Recommendations: []models.Product{}, HasMore: false}, nil
	}

	return &Output{
		Found:           true,
		Recommendations: batch.Recommendations,
		HasMore:         true,
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
		"count":  len(output.Recommendations),
	})
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error) {
	stdErr := commonerrors.FromError(err)
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(stdErr.Code)).Inc()
	h.errorHandler.HandleJobError(ctx, client, job, stdErr)
}
