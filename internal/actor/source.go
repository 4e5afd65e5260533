package actor

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrSourceNotFound indicates the actor source file could not be read.
var ErrSourceNotFound = errors.New("actor source not found")

// playerActor is stored as ovl_player_actor/z_player.c.
const playerActor = "player"

// SourcePath returns the source file of the named actor:
// <root>/<actorsDir>/ovl_<name>/z_<lowercase name>.c. A name that already
// points at an existing .c file is returned unchanged.
func SourcePath(root, actorsDir, name string) string {
	if strings.HasSuffix(name, ".c") {
		if info, err := os.Stat(name); err == nil && !info.IsDir() {
			return name
		}
	}

	dir := "ovl_" + name
	if name == playerActor {
		dir += "_actor"
	}
	return filepath.Join(root, actorsDir, dir, "z_"+strings.ToLower(name)+".c")
}

// Name returns the actor name used for output files: the argument itself,
// or for a direct file path the file name without the z_ prefix and .c.
func Name(arg string) string {
	if !strings.HasSuffix(arg, ".c") {
		return arg
	}
	base := strings.TrimSuffix(filepath.Base(arg), ".c")
	return strings.TrimPrefix(base, "z_")
}

// ReadSource reads the whole source file.
func ReadSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", ErrSourceNotFound, path, err)
	}
	return string(data), nil
}
