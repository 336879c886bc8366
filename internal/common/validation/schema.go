package validation

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"ezypc-storefront/internal/models"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaMap  map[string]interface{}
	schemaErr  error
)

// ResponseSchema reflects the JSON Schema of models.Batch. The same document
// is sent to the model and used for local validation.
func ResponseSchema() *jsonschema.Schema {
	loadSchema()
	return schema
}

// ResponseSchemaMap is ResponseSchema as a plain map, stripped of $schema and
// $id so that draft-7 validators accept it.
func ResponseSchemaMap() (map[string]interface{}, error) {
	loadSchema()
	return schemaMap, schemaErr
}

func loadSchema() {
	schemaOnce.Do(func() {
		reflector := jsonschema.Reflector{
			AllowAdditionalProperties: false,
			DoNotReference:            true,
		}
		schema = reflector.Reflect(&models.Batch{})

		raw, err := json.Marshal(schema)
		if err != nil {
			schemaErr = fmt.Errorf("marshal response schema: %w", err)
			return
		}
		var m map[string]interface{}
		if err := json.Unmarshal(raw, &m); err != nil {
			schemaErr = fmt.Errorf("unmarshal response schema: %w", err)
			return
		}
		delete(m, "$schema")
		delete(m, "$id")
		schemaMap = m
	})
}

// ValidateBatch checks a decoded JSON document against the response schema.
func ValidateBatch(data interface{}) (*ValidationResult, error) {
	m, err := ResponseSchemaMap()
	if err != nil {
		return nil, err
	}

	result, err := gojsonschema.Validate(gojsonschema.NewGoLoader(m), gojsonschema.NewGoLoader(data))
	if err != nil {
		return nil, fmt.Errorf("schema validation: %w", err)
	}

	vr := &ValidationResult{Valid: result.Valid()}
	for _, e := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   e.Field(),
			Message: e.Description(),
			Code:    strings.ToUpper(e.Type()),
		})
	}
	return vr, nil
}

func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phonePattern = regexp.MustCompile(`^\+?[\d\s\-\(\)]{10,}$`)
)

func ValidateEmail(email string) bool {
	return emailPattern.MatchString(email)
}

func ValidatePhone(phone string) bool {
	return phonePattern.MatchString(phone)
}
