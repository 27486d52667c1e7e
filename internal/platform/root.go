package platform

import (
	"errors"
	"os"
	"path/filepath"
)

// ProjectDir marks a directory holding project-local notes.
const ProjectDir = ".jot"

// ErrNoRoot is returned by FindRoot when no project directory exists above startDir.
var ErrNoRoot = errors.New("no .jot directory found")

// FindRoot looks upwards from startDir for a directory containing ProjectDir
// and returns its absolute path.
func FindRoot(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if isDir(filepath.Join(dir, ProjectDir)) {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			return "", ErrNoRoot
		}
		dir = parent
	}
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
