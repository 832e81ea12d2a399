package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/CeGenreDeChat/archive-name/internal/logger"
	"github.com/CeGenreDeChat/archive-name/pkg/debian"
)

// Config holds the settings used to name the package artifact.
type Config struct {
	// Control is the path of the control file to read.
	Control string `toml:"control"`
	// Package is the package name used in the artifact filename.
	Package string `toml:"package"`
	// Architecture is the architecture used in the artifact filename.
	Architecture string `toml:"architecture"`
	// Keyrings are public key files; when set, the control file must be clearsigned.
	Keyrings []string `toml:"keyrings"`
	// Strict enables Debian version syntax checking.
	Strict bool `toml:"strict"`
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

var (
	errConfigIsNotSet       = errors.New("configuration is not set")
	errPackageRequired      = errors.New("package name must not be empty")
	errArchitectureRequired = errors.New("architecture must not be empty")
	errInvalidFilenamePart  = errors.New("must not contain '_', '/' or whitespace")
	errUnknownLogLevel      = errors.New("unknown log level")
)

// Default returns the settings used when no configuration file is given.
func Default() *Config {
	return &Config{
		Control:      debian.DefaultControlPath,
		Package:      debian.DefaultPackageName,
		Architecture: debian.DefaultArchitecture,
		LogLevel:     "info",
	}
}

// Load reads path on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	meta, err := toml.Decode(string(contents), cfg)
	if err != nil {
		return nil, fmt.Errorf("decode settings: %w", err)
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return nil, fmt.Errorf("decode settings: unknown keys: %s", strings.Join(keys, ", "))
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the artifact name parts are usable.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if strings.TrimSpace(cfg.Package) == "" {
		return errPackageRequired
	}
	if strings.TrimSpace(cfg.Architecture) == "" {
		return errArchitectureRequired
	}

	if strings.ContainsAny(cfg.Package, "_/ \t\r\n") {
		return fmt.Errorf("package %q: %w", cfg.Package, errInvalidFilenamePart)
	}
	if strings.ContainsAny(cfg.Architecture, "_/ \t\r\n") {
		return fmt.Errorf("architecture %q: %w", cfg.Architecture, errInvalidFilenamePart)
	}

	if _, ok := logger.ParseLogLevel(cfg.LogLevel); !ok {
		return fmt.Errorf("log_level %q: %w", cfg.LogLevel, errUnknownLogLevel)
	}

	if cfg.Control == "" {
		cfg.Control = debian.DefaultControlPath
	}

	return nil
}

// ReadOptions converts the settings into control file read options.
func (c *Config) ReadOptions() debian.ReadOptions {
	return debian.ReadOptions{
		KeyringPaths: c.Keyrings,
		Strict:       c.Strict,
	}
}
