package validation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validBatch = `{
  "recommendations": [{
    "isBestMatch": true,
    "type": "Custom Build",
    "title": "Ryzen 5 5600 + RTX 3060 Build",
    "rationale": "Balanced 1080p gaming build.",
    "estimatedPriceINR": 65000,
    "components": [{"name": "Processor", "spec": "AMD Ryzen 5 5600"}],
    "purchaseOptions": [{"vendor": "MDComputers", "link": "https://example.com/a", "price": 65000}],
    "reviews": [{"source": "TechSpot", "author": "A. Nair", "rating": 4.5, "content": "Great value."}],
    "imageUrl": "https://source.unsplash.com/600x400/?pc-build-rtx3060"
  }]
}`

func decode(t *testing.T, s string) interface{} {
	t.Helper()
	var v interface{}
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestResponseSchema_Shape(t *testing.T) {
	m, err := ResponseSchemaMap()
	require.NoError(t, err)

	assert.Equal(t, "object", m["type"])
	assert.NotContains(t, m, "$schema")
	assert.Contains(t, m["required"], "recommendations")

	props := m["properties"].(map[string]interface{})
	recs := props["recommendations"].(map[string]interface{})
	assert.Equal(t, "array", recs["type"])

	item := recs["items"].(map[string]interface{})
	itemProps := item["properties"].(map[string]interface{})
	assert.NotContains(t, itemProps, "tag")
	assert.ElementsMatch(t,
		[]interface{}{"isBestMatch", "type", "title", "rationale", "estimatedPriceINR", "components", "purchaseOptions", "reviews", "imageUrl"},
		item["required"])

	typeProp := itemProps["type"].(map[string]interface{})
	assert.ElementsMatch(t, []interface{}{"Custom Build", "Prebuilt PC", "Laptop"}, typeProp["enum"])
}

func TestValidateBatch(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
	}{
		{name: "valid batch", doc: validBatch, valid: true},
		{name: "empty recommendations", doc: `{"recommendations": []}`, valid: true},
		{name: "missing recommendations", doc: `{"products": []}`, valid: false},
		{name: "recommendations not array", doc: `{"recommendations": {"title": "x"}}`, valid: false},
		{name: "null recommendations", doc: `{"recommendations": null}`, valid: false},
		{name: "unknown product type", doc: `{"recommendations": [{"isBestMatch": true, "type": "Tablet", "title": "x", "rationale": "y", "estimatedPriceINR": 1, "components": [], "purchaseOptions": [], "reviews": [], "imageUrl": "z"}]}`, valid: false},
		{name: "missing title", doc: `{"recommendations": [{"isBestMatch": true, "type": "Laptop", "rationale": "y", "estimatedPriceINR": 1, "components": [], "purchaseOptions": [], "reviews": [], "imageUrl": "z"}]}`, valid: false},
		{name: "price as string", doc: `{"recommendations": [{"isBestMatch": true, "type": "Laptop", "title": "x", "rationale": "y", "estimatedPriceINR": "1000", "components": [], "purchaseOptions": [], "reviews": [], "imageUrl": "z"}]}`, valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ValidateBatch(decode(t, tt.doc))
			require.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid, result.GetErrorMessages())
			if !tt.valid {
				assert.NotEmpty(t, result.Errors)
			}
		})
	}
}

func TestValidateContact(t *testing.T) {
	assert.True(t, ValidateEmail("store@ezypc.in"))
	assert.False(t, ValidateEmail("not-an-email"))
	assert.True(t, ValidatePhone("+91 98470 12345"))
	assert.False(t, ValidatePhone("12345"))
}
