package template

import (
	"os"
	"path/filepath"

	"github.com/digitaldrywood/invoicegen/internal/config"
)

// ResolveFilename turns a filename pattern with placeholder tokens into a
// concrete output path. Only the base name is substituted; the directory is
// taken as-is and must already exist (creating it is the caller's job).
func ResolveFilename(pattern string, values Values) (string, error) {
	dir, base := filepath.Split(pattern)
	if dir == "" {
		return "", config.Errorf("template path %q has no directory component", pattern)
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", config.Errorf("output directory %q does not exist", filepath.Clean(dir))
	}
	if !info.IsDir() {
		return "", config.Errorf("output path %q is not a directory", filepath.Clean(dir))
	}

	resolved, _ := values.Apply(base)
	return filepath.Join(dir, resolved), nil
}
