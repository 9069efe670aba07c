package schemas

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateJSONString_Valid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"name": "test"}`

	err := ValidateJSONString(schemaContent, jsonContent)
	assert.NoError(t, err)
}

func TestValidateJSONString_Invalid(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["name"],
		"properties": {
			"name": {"type": "string"}
		}
	}`
	jsonContent := `{"age": 30}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_MalformedDocument(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object"
	}`

	err := ValidateJSONString(schemaContent, "{ not json }")
	require.Error(t, err)

	_, ok := err.(*SchemaLoadError)
	assert.True(t, ok, "malformed document should surface as SchemaLoadError")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}

func TestValidateJSONString_NestedFieldValidation(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["table"],
		"properties": {
			"table": {
				"type": "object",
				"required": ["name"],
				"properties": {
					"name": {"type": "string"}
				}
			}
		}
	}`

	jsonContent := `{"table": {}}`

	err := ValidateJSONString(schemaContent, jsonContent)
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
	found := false
	for _, fieldErr := range validationErr.Errors {
		if fieldErr.Field != "" {
			found = true
			break
		}
	}
	assert.True(t, found, "should include field path in error")
}
