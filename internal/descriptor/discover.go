package descriptor

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileNames lists descriptor names looked up in a project directory, in priority order.
var DefaultFileNames = []string{"buildscript.yaml", "buildscript.yml", "buildscript.hcl"}

// ErrNotFound is returned by Find when no descriptor exists in the directory.
var ErrNotFound = errors.New("no build descriptor found")

// Find returns the first descriptor file present in dir.
func Find(dir string) (string, error) {
	for _, name := range DefaultFileNames {
		candidate := filepath.Join(dir, name)
		info, err := os.Stat(candidate)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return "", fmt.Errorf("stat %s: %w", candidate, err)
		}
		if !info.IsDir() {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w in %s (looked for %v)", ErrNotFound, dir, DefaultFileNames)
}
