// internal/platform/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"accountx/internal/core/domain"
	"accountx/internal/platform/errors"
)

// Config es la configuración completa del binario.
type Config struct {
	// IO
	InputPath  string // "" o "-" = stdin
	OutputPath string // "" o "-" = stdout
	Pretty     bool

	// Pipeline
	Normalize  bool // correr el normalizador antes de consolidar
	MaxRecords int

	// Data assets
	ServicesFile string // YAML con overrides de tablas de servicios

	// UI
	Quiet     bool
	NoSummary bool
	NoTable   bool

	// Meta
	PrintVersion bool
}

// DefaultConfig retorna la configuración por defecto.
func DefaultConfig() Config {
	return Config{
		InputPath:  "-",
		OutputPath: "-",
		Pretty:     false,
		Normalize:  false,
		MaxRecords: 10000,
	}
}

// Load inicializa la configuración: defaults, luego ENV, luego flags
// (los flags tienen prioridad).
func Load(args []string) (Config, error) {
	cfg := DefaultConfig()
	loadFromEnv(&cfg)

	fs := pflag.NewFlagSet("accountx", pflag.ContinueOnError)
	fs.StringVarP(&cfg.InputPath, "input", "i", cfg.InputPath, "input JSON file with raw account records (- for stdin)")
	fs.StringVarP(&cfg.OutputPath, "output", "o", cfg.OutputPath, "output JSON file (- for stdout)")
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "indent JSON output")
	fs.BoolVarP(&cfg.Normalize, "normalize", "n", cfg.Normalize, "normalize dirty fields before consolidating")
	fs.IntVar(&cfg.MaxRecords, "max-records", cfg.MaxRecords, "maximum records per run")
	fs.StringVar(&cfg.ServicesFile, "services-file", cfg.ServicesFile, "YAML file overriding the known-services tables")
	fs.BoolVarP(&cfg.Quiet, "quiet", "q", cfg.Quiet, "suppress all terminal output except errors")
	fs.BoolVar(&cfg.NoSummary, "no-summary", cfg.NoSummary, "skip the terminal summary")
	fs.BoolVar(&cfg.NoTable, "no-table", cfg.NoTable, "skip the account table")
	fs.BoolVarP(&cfg.PrintVersion, "version", "V", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return cfg, errors.Wrap(err, "parsing flags")
	}

	normalize(&cfg)
	return cfg, nil
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("ACCOUNTX_INPUT"); v != "" {
		cfg.InputPath = v
	}
	if v := os.Getenv("ACCOUNTX_OUTPUT"); v != "" {
		cfg.OutputPath = v
	}
	if v := os.Getenv("ACCOUNTX_SERVICES_FILE"); v != "" {
		cfg.ServicesFile = v
	}
	if v := os.Getenv("ACCOUNTX_MAX_RECORDS"); v != "" {
		if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil && n > 0 {
			cfg.MaxRecords = n
		}
	}
	if v := os.Getenv("ACCOUNTX_QUIET"); v != "" {
		cfg.Quiet = v == "1" || strings.EqualFold(v, "true")
	}
}

func normalize(cfg *Config) {
	if cfg.InputPath == "" {
		cfg.InputPath = "-"
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "-"
	}
	if cfg.MaxRecords <= 0 {
		cfg.MaxRecords = DefaultConfig().MaxRecords
	}
	if cfg.Quiet {
		cfg.NoSummary = true
		cfg.NoTable = true
	}
}

// serviceOverrides es el formato del YAML de --services-file.
type serviceOverrides struct {
	Names   map[string]string `yaml:"names"`
	Sources map[string]string `yaml:"sources"`
}

// LoadServiceTable construye la tabla de servicios: la tabla embebida por
// defecto más los overrides del archivo YAML si se configuró uno.
func LoadServiceTable(cfg Config) (*domain.ServiceTable, error) {
	table := domain.DefaultServiceTable()
	if cfg.ServicesFile == "" {
		return table, nil
	}

	data, err := os.ReadFile(cfg.ServicesFile)
	if err != nil {
		return nil, errors.Wrapf(err, "reading services file %s", cfg.ServicesFile)
	}

	var ov serviceOverrides
	if err := yaml.Unmarshal(data, &ov); err != nil {
		return nil, fmt.Errorf("parsing services file %s: %w", cfg.ServicesFile, err)
	}

	table.Override(ov.Names, ov.Sources)
	return table, nil
}
