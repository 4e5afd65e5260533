package render

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrRenderFailed indicates the Graphviz binary could not produce an image.
var ErrRenderFailed = errors.New("graphviz render failed")

// DescriptionOnly reports whether format is the Graphviz description
// itself, which needs no rendering.
func DescriptionOnly(format string) bool {
	switch strings.ToLower(format) {
	case "gv", "dot":
		return true
	}
	return false
}

// ImagePath returns the image written for a description file.
func ImagePath(dotPath, format string) string {
	if DescriptionOnly(format) {
		return dotPath
	}
	return dotPath + "." + strings.ToLower(format)
}

// Render runs `binary -T<format> -o <dotPath>.<format> <dotPath>` and
// returns the image path. Description-only formats return dotPath.
func Render(ctx context.Context, dotPath, format, binary string) (string, error) {
	if DescriptionOnly(format) {
		return dotPath, nil
	}

	bin, err := exec.LookPath(binary)
	if err != nil {
		return "", fmt.Errorf("%w: %s not found (install Graphviz, e.g. apt install graphviz): %v", ErrRenderFailed, binary, err)
	}

	out := ImagePath(dotPath, format)
	cmd := exec.CommandContext(ctx, bin, "-T"+strings.ToLower(format), "-o", out, dotPath)
	if output, err := cmd.CombinedOutput(); err != nil {
		return "", fmt.Errorf("%w: %v: %s", ErrRenderFailed, err, strings.TrimSpace(string(output)))
	}

	return out, nil
}
