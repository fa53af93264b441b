package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"hash"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/veldra/planforge/internal/domain"
	"github.com/veldra/planforge/internal/validation"
)

// Definition file names looked up under the data directory. Each may be
// JSON or YAML; JSON files are additionally checked against their schema.
const (
	ItemsFileName    = "items"
	RecipesFileName  = "recipes"
	MachinesFileName = "machines"

	ItemsSchemaPath    = "configs/schemas/items.schema.json"
	RecipesSchemaPath  = "configs/schemas/recipes.schema.json"
	MachinesSchemaPath = "configs/schemas/machines.schema.json"
)

// ErrMissingDefinition marks a definition file absent in both formats.
var ErrMissingDefinition = errors.New("missing definition file")

// File holds the parsed raw definitions before validation and indexing.
// Hash is a content hash over the source bytes.
type File struct {
	Items    []ItemDef
	Recipes  []RecipeDef
	Machines []MachineDef
	Hash     string
}

// ItemDef is a single item definition in the data files.
type ItemDef struct {
	ID      string `json:"item_id" yaml:"item_id"`
	NameKey string `json:"name_key" yaml:"name_key"`
	Raw     bool   `json:"raw,omitempty" yaml:"raw,omitempty"`
}

// IngredientDef is one input of a recipe definition.
type IngredientDef struct {
	Item     string  `json:"item" yaml:"item"`
	Quantity float64 `json:"quantity" yaml:"quantity"`
}

// RecipeDef is a single recipe definition in the data files.
type RecipeDef struct {
	ID            string          `json:"recipe_id" yaml:"recipe_id"`
	OutputItem    string          `json:"output_item" yaml:"output_item"`
	OutputQty     float64         `json:"output_qty" yaml:"output_qty"`
	CycleDuration float64         `json:"cycle_duration" yaml:"cycle_duration"`
	Inputs        []IngredientDef `json:"inputs" yaml:"inputs"`
	MachineType   string          `json:"machine_type" yaml:"machine_type"`
}

// MachineDef is a single machine type definition in the data files.
type MachineDef struct {
	ID         string  `json:"machine_id" yaml:"machine_id"`
	PowerDraw  float64 `json:"power_draw" yaml:"power_draw"`
	Throughput float64 `json:"throughput,omitempty" yaml:"throughput,omitempty"`
	Tier       int     `json:"tier,omitempty" yaml:"tier,omitempty"`
}

type itemsFile struct {
	Version     string    `json:"version" yaml:"version"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []ItemDef `json:"items" yaml:"items"`
}

type recipesFile struct {
	Version     string      `json:"version" yaml:"version"`
	Description string      `json:"description,omitempty" yaml:"description,omitempty"`
	Recipes     []RecipeDef `json:"recipes" yaml:"recipes"`
}

type machinesFile struct {
	Version     string       `json:"version" yaml:"version"`
	Description string       `json:"description,omitempty" yaml:"description,omitempty"`
	Machines    []MachineDef `json:"machines" yaml:"machines"`
}

// Loader reads and parses the catalog definition files.
type Loader interface {
	// Load reads items, recipes and machines from dir and returns the
	// validated, indexed catalog.
	Load(dir string) (*Catalog, error)
}

type fileLoader struct {
	schemaValidator validation.SchemaValidator
	schemaDir       string
}

// NewLoader creates a Loader that checks JSON definition files against
// the schemas under schemaDir. An empty schemaDir disables schema
// validation (structural validation in Build still applies).
func NewLoader(schemaDir string) Loader {
	l := &fileLoader{schemaDir: schemaDir}
	if schemaDir != "" {
		l.schemaValidator = validation.NewSchemaValidator()
	}
	return l
}

// Load reads the three definition files from dir, parses them and builds
// the catalog. Any malformed or missing reference is a DataError.
func (l *fileLoader) Load(dir string) (*Catalog, error) {
	hasher := sha256.New()

	var items itemsFile
	if err := l.loadOne(dir, ItemsFileName, ItemsSchemaPath, &items, hasher); err != nil {
		return nil, err
	}

	var recipes recipesFile
	if err := l.loadOne(dir, RecipesFileName, RecipesSchemaPath, &recipes, hasher); err != nil {
		return nil, err
	}

	var machines machinesFile
	if err := l.loadOne(dir, MachinesFileName, MachinesSchemaPath, &machines, hasher); err != nil {
		return nil, err
	}

	file := &File{
		Items:    items.Items,
		Recipes:  recipes.Recipes,
		Machines: machines.Machines,
		Hash:     hex.EncodeToString(hasher.Sum(nil)),
	}

	return Build(file)
}

// loadOne reads <dir>/<name>.json or <dir>/<name>.yaml (JSON preferred)
// into out and folds the raw bytes into the running content hash.
func (l *fileLoader) loadOne(dir, name, schemaPath string, out interface{}, hasher hash.Hash) error {
	jsonPath := filepath.Join(dir, name+".json")
	if data, err := os.ReadFile(jsonPath); err == nil {
		if l.schemaValidator != nil {
			schema := filepath.Join(l.schemaDir, filepath.Base(schemaPath))
			if err := l.schemaValidator.ValidateBytes(data, schema); err != nil {
				return domain.NewDataError("catalog", name, fmt.Errorf("schema validation failed: %w", err))
			}
		}
		if err := json.Unmarshal(data, out); err != nil {
			return domain.NewDataError("catalog", name, fmt.Errorf("parse %s: %w", jsonPath, err))
		}
		_, _ = hasher.Write(data)
		return nil
	}

	for _, ext := range []string{".yaml", ".yml"} {
		yamlPath := filepath.Join(dir, name+ext)
		data, err := os.ReadFile(yamlPath)
		if err != nil {
			continue
		}
		if err := yaml.Unmarshal(data, out); err != nil {
			return domain.NewDataError("catalog", name, fmt.Errorf("parse %s: %w", yamlPath, err))
		}
		_, _ = hasher.Write(data)
		return nil
	}

	return domain.NewDataError("catalog", name, fmt.Errorf("%w: %s.{json,yaml} in %s", ErrMissingDefinition, name, dir))
}
