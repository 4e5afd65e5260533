package config

// Config represents the complete graphovl configuration.
// It can be loaded from .graphovl/config.yml with environment variable overrides.
type Config struct {
	Source SourceConfig `yaml:"source" mapstructure:"source"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
	Scan   ScanConfig   `yaml:"scan" mapstructure:"scan"`
	Style  StyleConfig  `yaml:"style" mapstructure:"style"`
	Colors ColorsConfig `yaml:"colors" mapstructure:"colors"`
}

// SourceConfig locates actor sources.
type SourceConfig struct {
	Root      string `yaml:"root" mapstructure:"root"`             // decompilation repository root
	ActorsDir string `yaml:"actors_dir" mapstructure:"actors_dir"` // relative to Root
}

// OutputConfig defines where and how graphs are written.
type OutputConfig struct {
	Dir       string `yaml:"dir" mapstructure:"dir"`               // directory for .gv files and images
	Format    string `yaml:"format" mapstructure:"format"`         // Graphviz output format, e.g. "png"
	DotBinary string `yaml:"dot_binary" mapstructure:"dot_binary"` // Graphviz dot executable
}

// ScanConfig selects the definition scanner.
type ScanConfig struct {
	Parser string `yaml:"parser" mapstructure:"parser"` // "regex" or "treesitter"
}

// StyleConfig selects the color style profile.
type StyleConfig struct {
	Default string `yaml:"default" mapstructure:"default"` // profile used when none is requested; empty for none
	Dir     string `yaml:"dir" mapstructure:"dir"`         // directory of <name>.yml profiles
}

// ColorsConfig holds Graphviz colors. Names and hex values both work,
// see https://www.graphviz.org/doc/info/colors.html.
type ColorsConfig struct {
	Background     string `yaml:"background" mapstructure:"background"`
	FuncCall       string `yaml:"func_call" mapstructure:"func_call"`
	ActionFuncInit string `yaml:"action_func_init" mapstructure:"action_func_init"`
	ActionFunc     string `yaml:"action_func" mapstructure:"action_func"`
	Callback       string `yaml:"callback" mapstructure:"callback"`
	IndirectMember string `yaml:"indirect_member" mapstructure:"indirect_member"`
	FontColor      string `yaml:"font_color" mapstructure:"font_color"`
	BubbleColor    string `yaml:"bubble_color" mapstructure:"bubble_color"`
}

const (
	// ParserRegex selects the regex definition scanner.
	ParserRegex = "regex"
	// ParserTreeSitter selects the tree-sitter definition scanner.
	ParserTreeSitter = "treesitter"
)

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Source: SourceConfig{
			Root:      ".",
			ActorsDir: "src/overlays/actors",
		},
		Output: OutputConfig{
			Dir:       "graphs",
			Format:    "png",
			DotBinary: "dot",
		},
		Scan: ScanConfig{
			Parser: ParserRegex,
		},
		Style: StyleConfig{
			Default: "",
			Dir:     ".graphovl/styles",
		},
		Colors: DefaultColors(),
	}
}

// DefaultColors returns the built-in color scheme.
func DefaultColors() ColorsConfig {
	return ColorsConfig{
		Background:     "white",
		FuncCall:       "blue",
		ActionFuncInit: "green",
		ActionFunc:     "Black",
		Callback:       "blue",
		IndirectMember: "purple",
		FontColor:      "Black",
		BubbleColor:    "Black",
	}
}
