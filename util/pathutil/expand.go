// Package pathutil resolves user-supplied paths before they reach the
// scanner.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Expand expands the home directory (~) and environment variables in a
// path and returns it in absolute form.
func Expand(path string) (string, error) {
	if path == "~" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		return home, nil
	}
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not get user home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	path = os.ExpandEnv(path)

	return filepath.Abs(path)
}
