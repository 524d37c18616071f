package msgtrans

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config file looked up at the scan root.
const ConfigFileName = ".msgtrans.yaml"

// ProjectConfig holds project-scoped configuration stored in .msgtrans.yaml.
type ProjectConfig struct {
	// TranslationRoot replaces package directories as the place translation
	// files are looked up in. Relative paths are resolved against the scan root.
	TranslationRoot string `yaml:"translation_root,omitempty"`
	Encoding        string `yaml:"encoding,omitempty"`
	Workers         int    `yaml:"workers,omitempty"`
	// Index controls the per-interface locale lookup file; nil means enabled.
	Index *bool `yaml:"index,omitempty"`
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath(root string) string {
	return filepath.Join(root, ConfigFileName)
}

// LoadProjectConfig reads the project config from path.
// Returns a zero-value config (no error) if the file does not exist.
func LoadProjectConfig(path string) (*ProjectConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &ProjectConfig{}, nil
		}
		return nil, err
	}

	var cfg ProjectConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// SaveProjectConfig writes the project config to path.
func SaveProjectConfig(path string, cfg *ProjectConfig) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Config is the resolved configuration of one generation run.
type Config struct {
	Root            string
	TranslationRoot string
	Encoding        string
	Workers         int
	Index           bool
	DryRun          bool
	Verbose         bool
}

// Apply fills unset fields of c from the project config.
func (c *Config) Apply(p *ProjectConfig) {
	if p == nil {
		return
	}
	if c.TranslationRoot == "" {
		c.TranslationRoot = p.TranslationRoot
	}
	if c.Encoding == "" {
		c.Encoding = p.Encoding
	}
	if c.Workers == 0 {
		c.Workers = p.Workers
	}
	if p.Index != nil && !*p.Index {
		c.Index = false
	}
}

// Validate checks c and resolves relative paths against Root.
func (c *Config) Validate() error {
	if c.Root == "" {
		return errors.New("config: missing root directory")
	}
	info, err := os.Stat(c.Root)
	if err != nil {
		return fmt.Errorf("config: root: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("config: root %s is not a directory", c.Root)
	}
	if _, err := propertiesEncoding(c.Encoding); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("config: workers must not be negative, got %d", c.Workers)
	}
	if c.TranslationRoot != "" && !filepath.IsAbs(c.TranslationRoot) {
		c.TranslationRoot = filepath.Join(c.Root, c.TranslationRoot)
	}
	return nil
}
