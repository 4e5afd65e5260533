package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Loader provides configuration loading capabilities.
type Loader interface {
	// Load loads configuration from file and environment variables.
	// Priority: defaults → config file → environment variables (env wins)
	Load() (*Config, error)
}

type loader struct {
	rootDir    string
	configFile string
}

// NewLoader creates a new configuration loader for the given root directory.
func NewLoader(rootDir string) Loader {
	return &loader{
		rootDir: rootDir,
	}
}

// NewFileLoader creates a loader that reads an explicit config file
// instead of searching .graphovl/.
func NewFileLoader(configFile string) Loader {
	return &loader{
		configFile: configFile,
	}
}

// Load loads configuration with the following priority (highest to lowest):
// 1. Environment variables (GRAPHOVL_*)
// 2. Config file (.graphovl/config.yml or .graphovl/config.yaml)
// 3. Default values
func (l *loader) Load() (*Config, error) {
	v := viper.New()

	if l.configFile != "" {
		v.SetConfigFile(l.configFile)
	} else {
		configDir := filepath.Join(l.rootDir, ".graphovl")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(configDir)
	}

	// Enable environment variable overrides
	v.SetEnvPrefix("GRAPHOVL")
	v.AutomaticEnv()
	// Replace . with _ in env var names (e.g., GRAPHOVL_OUTPUT_FORMAT)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Source configuration
	v.BindEnv("source.root")
	v.BindEnv("source.actors_dir")

	// Output configuration
	v.BindEnv("output.dir")
	v.BindEnv("output.format")
	v.BindEnv("output.dot_binary")

	// Scan configuration
	v.BindEnv("scan.parser")

	// Style configuration
	v.BindEnv("style.default")
	v.BindEnv("style.dir")

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is acceptable - we'll use defaults + env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setDefaults configures viper with default values.
func setDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("source.root", defaults.Source.Root)
	v.SetDefault("source.actors_dir", defaults.Source.ActorsDir)

	v.SetDefault("output.dir", defaults.Output.Dir)
	v.SetDefault("output.format", defaults.Output.Format)
	v.SetDefault("output.dot_binary", defaults.Output.DotBinary)

	v.SetDefault("scan.parser", defaults.Scan.Parser)

	v.SetDefault("style.default", defaults.Style.Default)
	v.SetDefault("style.dir", defaults.Style.Dir)

	setColorDefaults(v, "colors", defaults.Colors)
}

// setColorDefaults registers every color key under prefix. Defaults also
// make AutomaticEnv pick up GRAPHOVL_COLORS_* overrides.
func setColorDefaults(v *viper.Viper, prefix string, c ColorsConfig) {
	v.SetDefault(prefix+".background", c.Background)
	v.SetDefault(prefix+".func_call", c.FuncCall)
	v.SetDefault(prefix+".action_func_init", c.ActionFuncInit)
	v.SetDefault(prefix+".action_func", c.ActionFunc)
	v.SetDefault(prefix+".callback", c.Callback)
	v.SetDefault(prefix+".indirect_member", c.IndirectMember)
	v.SetDefault(prefix+".font_color", c.FontColor)
	v.SetDefault(prefix+".bubble_color", c.BubbleColor)
}

// LoadConfig is a convenience function that creates a loader and loads config.
// It uses the current working directory as the root.
func LoadConfig() (*Config, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return NewLoader(wd).Load()
}

// LoadConfigFromDir loads configuration from a specific directory.
func LoadConfigFromDir(rootDir string) (*Config, error) {
	return NewLoader(rootDir).Load()
}
