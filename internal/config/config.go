package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultTool       = "BioScriptEx10"
	DefaultMaxRecords = 1000
	DefaultBatchSize  = 500
	DefaultRetType    = "gb"
	DefaultBaseURL    = "https://eutils.ncbi.nlm.nih.gov/entrez/eutils/"

	EnvEmail  = "TAXSEQ_EMAIL"
	EnvAPIKey = "TAXSEQ_API_KEY"
)

type Config struct {
	Email      string `yaml:"email"`
	APIKey     string `yaml:"api_key"`
	Tool       string `yaml:"tool"`
	BaseURL    string `yaml:"base_url"`
	RetType    string `yaml:"rettype"`
	BatchSize  int    `yaml:"batch_size"`
	MaxRecords int    `yaml:"max_records"`
	OutDir     string `yaml:"out_dir"`

	// Per-run inputs. Never read from the config file.
	TaxID  string `yaml:"-"`
	MinLen int    `yaml:"-"`
	MaxLen int    `yaml:"-"`
}

func Default() Config {
	return Config{
		Tool:       DefaultTool,
		BaseURL:    DefaultBaseURL,
		RetType:    DefaultRetType,
		BatchSize:  DefaultBatchSize,
		MaxRecords: DefaultMaxRecords,
		OutDir:     ".",
	}
}

// DefaultPath is $XDG_CONFIG_HOME/taxseq/config.yaml (or the OS equivalent).
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "taxseq", "config.yaml")
}

// Load reads path on top of Default. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// ApplyEnv overrides credentials from TAXSEQ_EMAIL and TAXSEQ_API_KEY.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvEmail)); v != "" {
		c.Email = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.APIKey = v
	}
}

func (c Config) CSVPath() string {
	return filepath.Join(c.OutDir, fmt.Sprintf("taxid_%s_filtered.csv", c.TaxID))
}

func (c Config) PlotPath() string {
	return filepath.Join(c.OutDir, fmt.Sprintf("taxid_%s_plot.png", c.TaxID))
}

func (c Config) Validate() error {
	if c.TaxID == "" {
		return fmt.Errorf("taxonomic ID is required (use --taxid)")
	}
	if c.BatchSize <= 0 {
		return fmt.Errorf("batch size must be positive, got %d", c.BatchSize)
	}
	if c.MaxRecords < 0 {
		return fmt.Errorf("max records must not be negative, got %d", c.MaxRecords)
	}
	switch c.RetType {
	case "gb", "fasta":
	default:
		return fmt.Errorf("unsupported rettype %q (want gb or fasta)", c.RetType)
	}
	return nil
}
