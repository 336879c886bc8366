package gateway

import (
	"context"
	"fmt"

	"ezypc-storefront/internal/common/validation"

	openai "github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
	"github.com/openai/openai-go/v2/shared"
)

// OpenAIBackend talks to any OpenAI-compatible chat completions endpoint,
// e.g. llama.cpp or Gemini's compatibility layer.
type OpenAIBackend struct {
	client openai.Client
	model  string
	format openai.ChatCompletionNewParamsResponseFormatUnion
}

func NewOpenAIBackend(cfg Config, apiKey string) (*OpenAIBackend, error) {
	schema, err := validation.ResponseSchemaMap()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfiguration, err)
	}

	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	model := cfg.Model
	if model == "" {
		model = DefaultModel
	}

	return &OpenAIBackend{
		client: openai.NewClient(opts...),
		model:  model,
		format: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONSchema: &openai.ResponseFormatJSONSchemaParam{
				JSONSchema: openai.ResponseFormatJSONSchemaJSONSchemaParam{
					Name:        "recommendations",
					Description: openai.String("PC recommendations for the EZYPC storefront"),
					Schema:      schema,
					Strict:      openai.Bool(true),
				},
			},
		},
	}, nil
}

func (b *OpenAIBackend) Generate(ctx context.Context, req Request) (string, error) {
	completion, err := b.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(req.Prompt),
		},
		Model:          shared.ChatModel(b.model),
		ResponseFormat: b.format,
		Temperature:    openai.Float(float64(req.Temperature)),
	})
	if err != nil {
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", nil
	}
	return completion.Choices[0].Message.Content, nil
}
