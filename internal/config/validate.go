package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidFormat indicates an unsupported Graphviz output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidParser indicates an unknown definition scanner
	ErrInvalidParser = errors.New("invalid parser")

	// ErrEmptyColor indicates a missing color value
	ErrEmptyColor = errors.New("empty color")

	// ErrEmptyPath indicates a missing required path
	ErrEmptyPath = errors.New("empty path")
)

// validFormats are the Graphviz output formats accepted for images. "gv"
// and "dot" write the graph description only.
var validFormats = map[string]bool{
	"gv":    true,
	"dot":   true,
	"png":   true,
	"svg":   true,
	"svgz":  true,
	"pdf":   true,
	"jpg":   true,
	"jpeg":  true,
	"gif":   true,
	"bmp":   true,
	"webp":  true,
	"tif":   true,
	"tiff":  true,
	"ps":    true,
	"eps":   true,
	"json":  true,
	"xdot":  true,
	"plain": true,
	"canon": true,
}

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if err := validateSource(&cfg.Source); err != nil {
		errs = append(errs, err)
	}

	if err := validateOutput(&cfg.Output); err != nil {
		errs = append(errs, err)
	}

	if err := validateScan(&cfg.Scan); err != nil {
		errs = append(errs, err)
	}

	if err := ValidateColors(&cfg.Colors); err != nil {
		errs = append(errs, err)
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

func validateSource(cfg *SourceConfig) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return fmt.Errorf("%w: source.root is required", ErrEmptyPath)
	}
	return nil
}

func validateOutput(cfg *OutputConfig) error {
	var errs []error

	if strings.TrimSpace(cfg.Dir) == "" {
		errs = append(errs, fmt.Errorf("%w: output.dir is required", ErrEmptyPath))
	}

	if err := ValidateFormat(cfg.Format); err != nil {
		errs = append(errs, err)
	}

	if strings.TrimSpace(cfg.DotBinary) == "" {
		errs = append(errs, fmt.Errorf("%w: output.dot_binary is required", ErrEmptyPath))
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// ValidateFormat checks a Graphviz output format name.
func ValidateFormat(format string) error {
	if !validFormats[strings.ToLower(format)] {
		return fmt.Errorf("%w: unsupported format '%s'", ErrInvalidFormat, format)
	}
	return nil
}

func validateScan(cfg *ScanConfig) error {
	return ValidateParser(cfg.Parser)
}

// ValidateParser checks a definition scanner name.
func ValidateParser(parser string) error {
	switch strings.ToLower(parser) {
	case ParserRegex, ParserTreeSitter:
		return nil
	}
	return fmt.Errorf("%w: must be '%s' or '%s', got '%s'", ErrInvalidParser, ParserRegex, ParserTreeSitter, parser)
}

// ValidateColors checks that every color is set.
func ValidateColors(cfg *ColorsConfig) error {
	var errs []error

	colors := []struct {
		key   string
		value string
	}{
		{"background", cfg.Background},
		{"func_call", cfg.FuncCall},
		{"action_func_init", cfg.ActionFuncInit},
		{"action_func", cfg.ActionFunc},
		{"callback", cfg.Callback},
		{"indirect_member", cfg.IndirectMember},
		{"font_color", cfg.FontColor},
		{"bubble_color", cfg.BubbleColor},
	}
	for _, c := range colors {
		if strings.TrimSpace(c.value) == "" {
			errs = append(errs, fmt.Errorf("%w: colors.%s is required", ErrEmptyColor, c.key))
		}
	}

	if len(errs) > 0 {
		return joinErrors(errs)
	}

	return nil
}

// joinErrors combines multiple errors into a single error with clear
// formatting. The result still matches each error with errors.Is.
func joinErrors(errs []error) error {
	if len(errs) == 0 {
		return nil
	}

	if len(errs) == 1 {
		return errs[0]
	}

	format := "validation failed:" + strings.Repeat("\n  - %w", len(errs))
	args := make([]any, len(errs))
	for i, err := range errs {
		args[i] = err
	}

	return fmt.Errorf(format, args...)
}
