// Package config provides project configuration for the eslower
// toolchain.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the file the loader searches for.
const ConfigFileName = "eslower.toml"

// ESVersion names an ECMAScript dialect a program can be lowered to.
type ESVersion string

const (
	ES3    ESVersion = "es3"
	ES5    ESVersion = "es5"
	ES2015 ESVersion = "es2015"
	ES2016 ESVersion = "es2016"
	ES2017 ESVersion = "es2017"
	ES2018 ESVersion = "es2018"
)

// IsValid reports whether the version is one the toolchain knows.
func (v ESVersion) IsValid() bool {
	switch v {
	case ES3, ES5, ES2015, ES2016, ES2017, ES2018:
		return true
	default:
		return false
	}
}

// Config is the complete project configuration.
type Config struct {
	Target    TargetConfig    `toml:"target"`
	Passes    PassesConfig    `toml:"passes"`
	SourceMap SourceMapConfig `toml:"sourcemaps"`
}

// TargetConfig selects the output dialect.
type TargetConfig struct {
	// ESVersion is the dialect the pass pipeline lowers to.
	ESVersion ESVersion `toml:"es_version"`
}

// PassesConfig toggles individual lowerings.
type PassesConfig struct {
	// Classes enables constructor lowering.
	Classes bool `toml:"classes"`

	// Destructuring enables destructuring lowering.
	Destructuring bool `toml:"destructuring"`

	// Loose elides array-conversion helpers when the right-hand side
	// is statically an array, and skips aliasing of plain
	// identifiers.
	Loose bool `toml:"loose"`
}

// SourceMapConfig controls validation of generated source maps.
type SourceMapConfig struct {
	// Validate runs the source map validator after generation.
	Validate bool `toml:"validate"`

	// Strict turns validation warnings into errors.
	Strict bool `toml:"strict"`
}

// DefaultConfig returns the configuration used when no file exists:
// lower everything to ES5 with standards-compliant (non-loose) output.
func DefaultConfig() *Config {
	return &Config{
		Target: TargetConfig{ESVersion: ES5},
		Passes: PassesConfig{
			Classes:       true,
			Destructuring: true,
		},
		SourceMap: SourceMapConfig{Validate: false},
	}
}

// Load reads configuration from path. An empty path searches for
// eslower.toml from the working directory upward; when no file is
// found the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		found, err := FindConfigFile()
		if err != nil {
			return DefaultConfig(), nil
		}
		path = found
	}

	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", path, err)
	}
	return cfg, nil
}

// FindConfigFile walks from the working directory to the filesystem
// root looking for eslower.toml.
func FindConfigFile() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get working directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", ConfigFileName)
		}
		dir = parent
	}
}

// Validate checks the configuration for consistency.
func (c *Config) Validate() error {
	if !c.Target.ESVersion.IsValid() {
		return fmt.Errorf("unknown target es_version %q", c.Target.ESVersion)
	}
	return nil
}

// Save writes the configuration to path in TOML form.
func (c *Config) Save(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := toml.NewEncoder(f).Encode(c); err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}
	return nil
}
