// Package config loads the logistica configuration file: a small YAML
// document validated against an embedded CUE schema before any command
// runs with it.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"gopkg.in/yaml.v3"

	"github.com/cargarastreada/logistica/internal/geo"
)

//go:embed schema.cue
var schemaCUE string

// DefaultPath is where the CLI looks for the config file when --config is
// not given.
const DefaultPath = "logistica.yaml"

// KanbanConfig configures the planning board.
type KanbanConfig struct {
	StatePath string `yaml:"state_path" json:"state_path"`
	Secret    string `yaml:"secret" json:"secret"`
}

// TitanConfig configures the dashboard API client.
type TitanConfig struct {
	BaseURL string `yaml:"base_url" json:"base_url"`
}

// Config is the full configuration document.
type Config struct {
	DatabasePath string       `yaml:"database_path" json:"database_path"`
	Kanban       KanbanConfig `yaml:"kanban" json:"kanban"`
	Titan        TitanConfig  `yaml:"titan" json:"titan"`
	GeoJSONURL   string       `yaml:"geojson_url" json:"geojson_url"`
	Verbose      bool         `yaml:"verbose" json:"verbose"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		DatabasePath: "logistica_interna.db",
		Kanban: KanbanConfig{
			StatePath: "kanban_state.json",
		},
		Titan: TitanConfig{
			BaseURL: "http://app.cargarastreada.com.br/glovis/dashboard-api",
		},
		GeoJSONURL: geo.DefaultBoundaryURL,
	}
}

// ValidationError carries the CUE diagnostics for a config that failed
// schema validation.
type ValidationError struct {
	Path    string
	Details string
	Err     error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid config %s: %s", e.Path, e.Details)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Load reads, decodes and validates the config file at path. A missing
// file is not an error: defaults apply. A present but invalid file is.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := Validate(cfg); err != nil {
		var verr *ValidationError
		if errors.As(err, &verr) {
			verr.Path = path
			return Config{}, verr
		}
		return Config{}, err
	}
	return cfg, nil
}

// Validate unifies the config with the embedded CUE schema and requires
// every field to be concrete and in range.
func Validate(cfg Config) error {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE).LookupPath(cue.ParsePath("#Config"))
	if err := schema.Err(); err != nil {
		return fmt.Errorf("compile config schema: %w", err)
	}

	value := ctx.Encode(cfg)
	if err := value.Err(); err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	unified := schema.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &ValidationError{
			Details: cueerrors.Details(err, nil),
			Err:     err,
		}
	}
	return nil
}
