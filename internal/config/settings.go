package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danieljhkim/modlayout/internal/layouts"
	"github.com/danieljhkim/modlayout/internal/report"
)

// Environment variables that override config.yaml.
const (
	EnvAutoconvert     = "MODLAYOUT_REDMOD_AUTOCONVERT"
	EnvFallbackAnyways = "MODLAYOUT_FALLBACK_INSTALL_ANYWAYS"
	EnvAssumeYes       = "MODLAYOUT_ASSUME_YES"
	EnvLogLevel        = "MODLAYOUT_LOG_LEVEL"
)

// Settings is the user configuration.
type Settings struct {
	Features  Features       `yaml:"features"`
	AssumeYes bool           `yaml:"assume_yes"`
	LogLevel  string         `yaml:"log_level"`
	Layouts   []LayoutConfig `yaml:"layouts"`
}

// Features mirrors layouts.FeatureSet in the config file.
type Features struct {
	REDmodAutoconvertArchives    bool `yaml:"redmod_autoconvert_archives"`
	REDmodFallbackInstallAnyways bool `yaml:"redmod_fallback_install_anyways"`
}

// LayoutConfig declares a custom fingerprint layout.
type LayoutConfig struct {
	Name        string   `yaml:"name"`
	Required    []string `yaml:"required"`
	Directories []string `yaml:"directories"`
	Deprecated  bool     `yaml:"deprecated"`
	Include     []string `yaml:"include"`
}

// Default returns the settings used when no config file exists.
func Default() *Settings {
	return &Settings{LogLevel: "info"}
}

// Load reads settings for p. The .env file is loaded into the environment
// first (variables already set win), then config.yaml, then environment
// overrides. Missing files are not an error.
func Load(p *Paths) (*Settings, error) {
	if err := godotenv.Load(p.Env); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load %s: %w", p.Env, err)
	}

	s := Default()
	data, err := os.ReadFile(p.Config)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, s); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", p.Config, err)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("failed to read %s: %w", p.Config, err)
	}

	if err := s.applyEnv(); err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	overrides := []struct {
		name string
		dst  *bool
	}{
		{EnvAutoconvert, &s.Features.REDmodAutoconvertArchives},
		{EnvFallbackAnyways, &s.Features.REDmodFallbackInstallAnyways},
		{EnvAssumeYes, &s.AssumeYes},
	}
	for _, o := range overrides {
		raw := strings.TrimSpace(os.Getenv(o.name))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%s: %w", o.name, err)
		}
		*o.dst = v
	}

	if lvl := strings.TrimSpace(os.Getenv(EnvLogLevel)); lvl != "" {
		s.LogLevel = lvl
	}
	return nil
}

// Validate checks the log level and every custom layout.
func (s *Settings) Validate() error {
	if _, err := report.ParseLevel(s.LogLevel); err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Layouts))
	for _, l := range s.Layouts {
		if seen[l.Name] {
			return fmt.Errorf("custom layout %s is defined twice", l.Name)
		}
		seen[l.Name] = true
	}
	_, err := s.CustomFamily()
	return err
}

// FeatureSet converts the feature toggles for the engine.
func (s *Settings) FeatureSet() layouts.FeatureSet {
	return layouts.FeatureSet{
		REDmodAutoconvertArchives:    s.Features.REDmodAutoconvertArchives,
		REDmodFallbackInstallAnyways: s.Features.REDmodFallbackInstallAnyways,
	}
}

// Level returns the parsed log level, defaulting to info.
func (s *Settings) Level() report.Level {
	lvl, _ := report.ParseLevel(s.LogLevel)
	return lvl
}

// CustomFamily builds the custom layout family. It returns nil when no
// custom layouts are configured.
func (s *Settings) CustomFamily() (*layouts.Family, error) {
	if len(s.Layouts) == 0 {
		return nil, nil
	}

	specs := make([]layouts.FingerprintSpec, 0, len(s.Layouts))
	for _, l := range s.Layouts {
		specs = append(specs, layouts.FingerprintSpec{
			Name:        l.Name,
			Required:    l.Required,
			Directories: l.Directories,
			Deprecated:  l.Deprecated,
			Include:     l.Include,
		})
	}

	f, err := layouts.CustomFamily(specs)
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Catalog returns the built-in catalog with any custom layouts tried first.
func (s *Settings) Catalog() (*layouts.Catalog, error) {
	catalog := layouts.DefaultCatalog()
	custom, err := s.CustomFamily()
	if err != nil || custom == nil {
		return catalog, err
	}
	return catalog.WithFamily(*custom), nil
}
