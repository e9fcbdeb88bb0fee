package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
)

// SanitizeOutputPath cleans an output file path and returns it in absolute
// form. It rejects symlinks, directories and any path that resolves to one
// of inputs, so a merge can never overwrite its own sources. A file that
// does not exist yet is accepted.
func SanitizeOutputPath(path string, inputs ...string) (string, error) {
	abs, err := filepath.Abs(filepath.Clean(path))
	if err != nil {
		return "", fmt.Errorf("pathutil: cannot resolve absolute path: %w", err)
	}

	info, err := os.Lstat(abs)
	switch {
	case err == nil:
		if info.Mode()&os.ModeSymlink != 0 {
			return "", fmt.Errorf("pathutil: refusing to write to symlink: %s", abs)
		}
		if info.IsDir() {
			return "", fmt.Errorf("pathutil: output path is a directory: %s", abs)
		}
	case os.IsNotExist(err):
	default:
		return "", fmt.Errorf("pathutil: cannot stat path: %w", err)
	}

	for _, in := range inputs {
		absIn, err := filepath.Abs(in)
		if err != nil {
			return "", fmt.Errorf("pathutil: invalid input path %s: %w", in, err)
		}
		if absIn == abs {
			return "", fmt.Errorf("pathutil: output file %s would overwrite input %s", path, in)
		}
	}
	return abs, nil
}
