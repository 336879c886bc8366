package gateway

import (
	"context"
	"fmt"

	"ezypc-storefront/internal/common/validation"

	"github.com/invopop/jsonschema"
	"google.golang.org/genai"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

type GeminiBackend struct {
	models contentGenerator
	model  string
	schema *genai.Schema
}

func NewGeminiBackend(ctx context.Context, cfg Config, apiKey string) (*GeminiBackend, error) {
	clientCfg := &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", ErrConfiguration, err)
	}

	return newGeminiBackend(client.Models, cfg.Model), nil
}

func newGeminiBackend(models contentGenerator, model string) *GeminiBackend {
	if model == "" {
		model = DefaultModel
	}
	return &GeminiBackend{
		models: models,
		model:  model,
		schema: ToGenaiSchema(validation.ResponseSchema()),
	}
}

func (b *GeminiBackend) Generate(ctx context.Context, req Request) (string, error) {
	resp, err := b.models.GenerateContent(ctx, b.model, genai.Text(req.Prompt), &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   b.schema,
		Temperature:      genai.Ptr(req.Temperature),
	})
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", nil
	}
	return resp.Text(), nil
}

// ToGenaiSchema converts a reflected JSON Schema into the subset Gemini
// accepts, keeping property order.
func ToGenaiSchema(s *jsonschema.Schema) *genai.Schema {
	if s == nil {
		return nil
	}

	out := &genai.Schema{
		Type:        genaiType(s.Type),
		Description: s.Description,
		Required:    s.Required,
	}

	for _, e := range s.Enum {
		if v, ok := e.(string); ok {
			out.Enum = append(out.Enum, v)
		}
	}

	if s.Items != nil {
		out.Items = ToGenaiSchema(s.Items)
	}

	if s.Properties != nil && s.Properties.Len() > 0 {
		out.Properties = make(map[string]*genai.Schema, s.Properties.Len())
		for pair := s.Properties.Oldest(); pair != nil; pair = pair.Next() {
			out.Properties[pair.Key] = ToGenaiSchema(pair.Value)
			out.PropertyOrdering = append(out.PropertyOrdering, pair.Key)
		}
	}

	return out
}

func genaiType(t string) genai.Type {
	switch t {
	case "object":
		return genai.TypeObject
	case "array":
		return genai.TypeArray
	case "string":
		return genai.TypeString
	case "integer":
		return genai.TypeInteger
	case "number":
		return genai.TypeNumber
	case "boolean":
		return genai.TypeBoolean
	default:
		return genai.TypeUnspecified
	}
}
