package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSchema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["name", "count"],
  "properties": {
    "name": {"type": "string", "minLength": 1},
    "count": {"type": "integer", "minimum": 0}
  },
  "additionalProperties": false
}`

func writeTestSchema(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.schema.json")
	require.NoError(t, os.WriteFile(path, []byte(testSchema), 0o644))
	return path
}

func TestValidateBytes(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeTestSchema(t)

	t.Run("valid document", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{"name": "smelter", "count": 3}`), schemaPath)
		assert.NoError(t, err)
	})

	t.Run("missing required field", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{"name": "smelter"}`), schemaPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "schema validation failed")
	})

	t.Run("wrong type", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{"name": "smelter", "count": "three"}`), schemaPath)
		assert.Error(t, err)
	})

	t.Run("unexpected property", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{"name": "smelter", "count": 3, "extra": true}`), schemaPath)
		assert.Error(t, err)
	})

	t.Run("malformed JSON data", func(t *testing.T) {
		err := v.ValidateBytes([]byte(`{broken`), schemaPath)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse JSON data")
	})
}

func TestValidateFile(t *testing.T) {
	v := NewSchemaValidator()
	schemaPath := writeTestSchema(t)

	dataPath := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(dataPath, []byte(`{"name": "smelter", "count": 0}`), 0o644))

	assert.NoError(t, v.ValidateFile(dataPath, schemaPath))

	err := v.ValidateFile(filepath.Join(t.TempDir(), "missing.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read data file")
}

func TestSchemaCacheSurvivesBadSchema(t *testing.T) {
	v := NewSchemaValidator()

	badPath := filepath.Join(t.TempDir(), "bad.schema.json")
	require.NoError(t, os.WriteFile(badPath, []byte(`{"type": 42}`), 0o644))

	err := v.ValidateBytes([]byte(`{}`), badPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")

	// A good schema still compiles and caches afterwards.
	goodPath := writeTestSchema(t)
	assert.NoError(t, v.ValidateBytes([]byte(`{"name": "x", "count": 1}`), goodPath))
	assert.NoError(t, v.ValidateBytes([]byte(`{"name": "y", "count": 2}`), goodPath))
}

func TestMissingSchemaFile(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), filepath.Join(t.TempDir(), "nope.schema.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema")
}
