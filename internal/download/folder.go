package download

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureLeafFolder makes path usable as a report folder. The parent of path
// must already exist; only the final segment is ever created. It returns
// false when the parent is missing.
func EnsureLeafFolder(path string) (bool, error) {
	parent := filepath.Dir(filepath.Clean(path))
	info, err := os.Stat(parent)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", parent, err)
	}
	if !info.IsDir() {
		return false, nil
	}

	info, err = os.Stat(path)
	switch {
	case err == nil && info.IsDir():
		return true, nil
	case err == nil:
		return false, fmt.Errorf("%s exists and is not a directory", path)
	case !os.IsNotExist(err):
		return false, fmt.Errorf("stat %s: %w", path, err)
	}

	if err := os.Mkdir(path, 0o755); err != nil && !os.IsExist(err) {
		return false, fmt.Errorf("create %s: %w", path, err)
	}
	return true, nil
}
