package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ezypc-storefront/internal/common/validation"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	resp   *genai.GenerateContentResponse
	err    error
	model  string
	prompt string
	config *genai.GenerateContentConfig
}

func (f *fakeGenerator) GenerateContent(_ context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	return f.resp, f.err
}

func textResponse(text string) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			Content: &genai.Content{Role: "model", Parts: []*genai.Part{{Text: text}}},
		}},
	}
}

func TestGeminiBackend_Generate(t *testing.T) {
	gen := &fakeGenerator{resp: textResponse(validResponse)}
	backend := newGeminiBackend(gen, "")

	text, err := backend.Generate(context.Background(), Request{Prompt: "popular please", Temperature: 0.7})

	require.NoError(t, err)
	assert.JSONEq(t, validResponse, text)
	assert.Equal(t, DefaultModel, gen.model)
	assert.Equal(t, "popular please", gen.prompt)
	assert.Equal(t, "application/json", gen.config.ResponseMIMEType)
	require.NotNil(t, gen.config.Temperature)
	assert.Equal(t, float32(0.7), *gen.config.Temperature)
	require.NotNil(t, gen.config.ResponseSchema)
	assert.Equal(t, genai.TypeObject, gen.config.ResponseSchema.Type)
}

func TestGeminiBackend_Errors(t *testing.T) {
	backend := newGeminiBackend(&fakeGenerator{err: errors.New("quota exceeded")}, "custom-model")
	_, err := backend.Generate(context.Background(), Request{Prompt: "p"})
	assert.EqualError(t, err, "quota exceeded")

	backend = newGeminiBackend(&fakeGenerator{resp: &genai.GenerateContentResponse{}}, "custom-model")
	text, err := backend.Generate(context.Background(), Request{Prompt: "p"})
	assert.NoError(t, err)
	assert.Empty(t, text)
}

func TestToGenaiSchema(t *testing.T) {
	s := ToGenaiSchema(validation.ResponseSchema())

	require.NotNil(t, s)
	assert.Equal(t, genai.TypeObject, s.Type)
	assert.Equal(t, []string{"recommendations"}, s.Required)

	recs := s.Properties["recommendations"]
	require.NotNil(t, recs)
	assert.Equal(t, genai.TypeArray, recs.Type)

	item := recs.Items
	require.NotNil(t, item)
	assert.Equal(t, []string{"isBestMatch", "type", "title", "rationale", "estimatedPriceINR", "components", "purchaseOptions", "reviews", "imageUrl"}, item.PropertyOrdering)
	assert.NotContains(t, item.Properties, "tag")
	assert.Equal(t, genai.TypeBoolean, item.Properties["isBestMatch"].Type)
	assert.Equal(t, genai.TypeInteger, item.Properties["estimatedPriceINR"].Type)
	assert.Equal(t, []string{"Custom Build", "Prebuilt PC", "Laptop"}, item.Properties["type"].Enum)
	assert.Equal(t, genai.TypeNumber, item.Properties["reviews"].Items.Properties["rating"].Type)
	assert.NotEmpty(t, item.Properties["imageUrl"].Description)
}

func TestOpenAIBackend_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "POST", r.Method)
		assert.True(t, strings.HasSuffix(r.URL.Path, "/chat/completions"), r.URL.Path)
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gemini-3-flash-preview", body["model"])
		assert.InDelta(t, 0.8, body["temperature"], 0.0001)

		format := body["response_format"].(map[string]interface{})
		assert.Equal(t, "json_schema", format["type"])

		messages := body["messages"].([]interface{})
		require.Len(t, messages, 1)
		assert.Equal(t, "similar please", messages[0].(map[string]interface{})["content"])

		content, _ := json.Marshal(validResponse)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"id":"cmpl-1","object":"chat.completion","created":1,"model":"gemini-3-flash-preview","choices":[{"index":0,"finish_reason":"stop","message":{"role":"assistant","content":` + string(content) + `}}]}`))
	}))
	defer server.Close()

	backend, err := NewOpenAIBackend(Config{Provider: ProviderOpenAI, BaseURL: server.URL + "/v1/"}, "test-key")
	require.NoError(t, err)

	text, err := backend.Generate(context.Background(), Request{Prompt: "similar please", Temperature: 0.8})

	require.NoError(t, err)
	assert.JSONEq(t, validResponse, text)
}

func TestOpenAIBackend_ServerError(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom"}}`))
	}))
	defer server.Close()

	backend, err := NewOpenAIBackend(Config{BaseURL: server.URL + "/v1/"}, "test-key")
	require.NoError(t, err)

	_, err = backend.Generate(context.Background(), Request{Prompt: "p"})

	assert.Error(t, err)
	assert.Equal(t, 1, hits)
}
