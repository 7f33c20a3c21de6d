package schemas

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileSchema_IsValidJSON(t *testing.T) {
	var v map[string]any
	require.NoError(t, json.Unmarshal([]byte(ProfileSchema()), &v))
	assert.Equal(t, "Profile", v["title"])
}

func TestValidateProfile(t *testing.T) {
	tests := []struct {
		name      string
		doc       string
		wantError bool
		wantField string
	}{
		{
			name: "valid profile",
			doc: `{"name":"Main","data":{"personal":{"firstName":"Jane","email":"jane@example.com"},
				"work":[{"company":"Globex","title":"Engineer"}],"education":[]}}`,
		},
		{
			name: "empty data",
			doc:  `{"id":"abc","name":"Blank","data":{}}`,
		},
		{
			name:      "missing name",
			doc:       `{"data":{}}`,
			wantError: true,
			wantField: "(root)",
		},
		{
			name:      "wrong section type",
			doc:       `{"name":"Main","data":{"personal":{"firstName":7}}}`,
			wantError: true,
			wantField: "data.personal.firstName",
		},
		{
			name:      "unknown work field",
			doc:       `{"name":"Main","data":{"work":[{"employer":"Globex"}]}}`,
			wantError: true,
			wantField: "data.work.0",
		},
		{
			name:      "education must be an array",
			doc:       `{"name":"Main","data":{"education":{"school":"MIT"}}}`,
			wantError: true,
			wantField: "data.education",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateProfile([]byte(tt.doc))
			if !tt.wantError {
				assert.NoError(t, err)
				return
			}
			validationErr, ok := err.(*ValidationError)
			require.True(t, ok, "error should be ValidationError, got %T: %v", err, err)
			var fields []string
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateProfile_Malformed(t *testing.T) {
	err := ValidateProfile([]byte("{ invalid json }"))
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
}

func TestValidateProfileFile(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name":"Main","data":{}}`), 0644))
	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{"name":1,"data":{}}`), 0644))

	data, err := ValidateProfileFile(good)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Main")

	_, err = ValidateProfileFile(bad)
	assert.IsType(t, &ValidationError{}, err)

	_, err = ValidateProfileFile(filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString_NestedField(t *testing.T) {
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"required": ["person"],
		"properties": {
			"person": {
				"type": "object",
				"required": ["name"],
				"properties": {"name": {"type": "string"}}
			}
		}
	}`

	err := ValidateJSONString(schemaContent, `{"person": {}}`)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "person", validationErr.Errors[0].Field)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "data.work.0", Message: "Additional property employer is not allowed"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "1. name")
	assert.Contains(t, errorMsg, "2. data.work.0")
}
