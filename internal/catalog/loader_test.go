package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veldra/planforge/internal/domain"
)

const itemsJSON = `{
  "version": "1.0",
  "items": [
    {"item_id": "ore", "name_key": "item.ore", "raw": true},
    {"item_id": "ingot", "name_key": "item.ingot"}
  ]
}`

const recipesJSON = `{
  "version": "1.0",
  "recipes": [
    {
      "recipe_id": "ingot",
      "output_item": "ingot",
      "output_qty": 1,
      "cycle_duration": 2,
      "machine_type": "smelter",
      "inputs": [{"item": "ore", "quantity": 1}]
    }
  ]
}`

const machinesJSON = `{
  "version": "1.0",
  "machines": [
    {"machine_id": "smelter", "power_draw": 100}
  ]
}`

const machinesYAML = `version: "1.0"
machines:
  - machine_id: smelter
    power_draw: 100
    throughput: 2.0
`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestLoadJSONCatalog(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "items.json", itemsJSON)
	writeFile(t, dir, "recipes.json", recipesJSON)
	writeFile(t, dir, "machines.json", machinesJSON)

	cat, err := NewLoader("").Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 2, cat.ItemCount())
	assert.Equal(t, 1, cat.RecipeCount())
	assert.Equal(t, 1, cat.MachineCount())
	assert.NotEmpty(t, cat.Hash())
}

func TestLoadYAMLFallback(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "items.json", itemsJSON)
	writeFile(t, dir, "recipes.json", recipesJSON)
	writeFile(t, dir, "machines.yaml", machinesYAML)

	cat, err := NewLoader("").Load(dir)
	require.NoError(t, err)

	machine, ok := cat.Machine("smelter")
	require.True(t, ok)
	assert.Equal(t, 2.0, machine.Throughput)
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "items.json", itemsJSON)
	writeFile(t, dir, "recipes.json", recipesJSON)

	_, err := NewLoader("").Load(dir)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingDefinition)

	var dataErr *domain.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "machines", dataErr.ID)
}

func TestLoadMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "items.json", `{"version": "1.0", "items": [`)
	writeFile(t, dir, "recipes.json", recipesJSON)
	writeFile(t, dir, "machines.json", machinesJSON)

	_, err := NewLoader("").Load(dir)
	require.Error(t, err)

	var dataErr *domain.DataError
	require.ErrorAs(t, err, &dataErr)
	assert.Equal(t, "items", dataErr.ID)
}

func TestLoadHashChangesWithContent(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "items.json", itemsJSON)
	writeFile(t, dir, "recipes.json", recipesJSON)
	writeFile(t, dir, "machines.json", machinesJSON)

	loader := NewLoader("")
	first, err := loader.Load(dir)
	require.NoError(t, err)

	second, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, first.Hash(), second.Hash(), "same files, same hash")

	writeFile(t, dir, "machines.json", `{
  "version": "1.1",
  "machines": [{"machine_id": "smelter", "power_draw": 120}]
}`)
	third, err := loader.Load(dir)
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash(), third.Hash(), "changed files, changed hash")
}

func TestLoadSchemaValidation(t *testing.T) {
	schemaDir := t.TempDir()
	writeFile(t, schemaDir, "items.schema.json", `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["version", "items"],
  "properties": {
    "version": {"type": "string"},
    "items": {"type": "array"}
  }
}`)
	writeFile(t, schemaDir, "recipes.schema.json", `{"type": "object"}`)
	writeFile(t, schemaDir, "machines.schema.json", `{"type": "object"}`)

	t.Run("valid document passes", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "items.json", itemsJSON)
		writeFile(t, dir, "recipes.json", recipesJSON)
		writeFile(t, dir, "machines.json", machinesJSON)

		_, err := NewLoader(schemaDir).Load(dir)
		assert.NoError(t, err)
	})

	t.Run("schema violation is a data error", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "items.json", `{"items": []}`) // missing version
		writeFile(t, dir, "recipes.json", recipesJSON)
		writeFile(t, dir, "machines.json", machinesJSON)

		_, err := NewLoader(schemaDir).Load(dir)
		require.Error(t, err)

		var dataErr *domain.DataError
		require.ErrorAs(t, err, &dataErr)
		assert.Contains(t, err.Error(), "schema validation failed")
	})
}
