package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// styleExtensions are tried in order when resolving a profile name.
var styleExtensions = []string{".yml", ".yaml"}

// StylePath returns the profile file for name in dir, or "" if none exists.
func StylePath(dir, name string) string {
	for _, ext := range styleExtensions {
		path := filepath.Join(dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// LoadStyle returns the colors of cfg overridden by a style profile. The
// requested name wins over style.default; with neither, cfg's colors are
// returned unchanged. A missing profile is a warning, not an error.
//
// A profile is a YAML file with a colors section:
//
//	colors:
//	  background: "#002b36"
//	  func_call: "#268bd2"
func LoadStyle(cfg *Config, name string) (ColorsConfig, error) {
	colors := cfg.Colors
	if name == "" {
		name = cfg.Style.Default
	}
	if name == "" {
		return colors, nil
	}

	path := StylePath(cfg.Style.Dir, name)
	if path == "" {
		log.Printf("Warning: style %s not found in %s, using default colors", name, cfg.Style.Dir)
		return colors, nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	setColorDefaults(v, "colors", colors)

	if err := v.ReadInConfig(); err != nil {
		return colors, fmt.Errorf("failed to read style %s: %w", name, err)
	}

	if err := v.UnmarshalKey("colors", &colors); err != nil {
		return cfg.Colors, fmt.Errorf("failed to unmarshal style %s: %w", name, err)
	}

	if err := ValidateColors(&colors); err != nil {
		return cfg.Colors, fmt.Errorf("invalid style %s: %w", name, err)
	}

	return colors, nil
}
