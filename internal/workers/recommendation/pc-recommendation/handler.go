// internal/workers/recommendation/pc-recommendation/handler.go
package pcrecommendation

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

const TaskType = "pc-recommendation"

var (
	ErrServiceRequired   = errors.New("catalog service is required")
	ErrQuestionsRequired = errors.New("question registry is required")
)

type Service interface {
	GetPCRecommendation(ctx context.Context, useCase models.UseCase, answers []models.Answer) (*models.Batch, error)
}

// AnswerValidator checks wizard answers against the question bank.
type AnswerValidator interface {
	ValidateAnswers(useCase models.UseCase, answers []models.Answer) error
}

type Handler struct {
	config       *Config
	logger       logger.Logger
	service      Service
	questions    AnswerValidator
	errorHandler *commonerrors.ErrorHandler
}

type HandlerOptions struct {
	AppConfig    *config.Config
	Service      Service
	Questions    AnswerValidator
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
	if opts.Questions == nil {
		return nil, ErrQuestionsRequired
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
		questions:    opts.Questions,
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
	if input.UseCase == "" {
		return nil, commonerrors.NewInvalidInputError("useCase is required")
	}
	return &input, nil
}

// Execute validates the wizard answers and asks for a guided recommendation.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if err := h.questions.ValidateAnswers(input.UseCase, input.Answers); err != nil {
		return nil, err
	}

	batch, err := h.service.GetPCRecommendation(ctx, input.UseCase, input.Answers)
	if err != nil {
		return nil, err
	}
	if batch == nil || len(batch.Recommendations) == 0 {
		h.logger.Warn("no valid recommendations returned", map[string]interface{}{
			"useCase": string(input.UseCase),
		})
		return &Output{Found: false, Recommendations: []models.Product{}}, nil
	}

	tagged := catalog.MergeRecommended(nil, batch.Recommendations)
	out := &Output{Found: true, Recommendations: tagged}
	for i := range tagged {
		if tagged[i].IsBestMatch {
			out.BestMatch = &tagged[i]
			break
		}
	}
	return out, nil
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
