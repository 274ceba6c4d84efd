package relay

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResolveLocalFile maps a caller-supplied name to a regular file inside root.
// Absolute names are taken as-is, relative ones are joined to root. Symlinks
// are resolved before the containment check, so a link pointing outside root
// is rejected like any other escape.
func ResolveLocalFile(root, name string) (string, error) {
	if strings.TrimSpace(name) == "" {
		return "", ErrFilenameRequired
	}

	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}
	rootReal, err := filepath.EvalSymlinks(rootAbs)
	if err != nil {
		return "", fmt.Errorf("resolve root: %w", err)
	}

	candidate := name
	if !filepath.IsAbs(candidate) {
		candidate = filepath.Join(rootAbs, candidate)
	}

	real, err := filepath.EvalSymlinks(filepath.Clean(candidate))
	if err != nil {
		return "", ErrFileNotFound
	}

	if !within(rootReal, real) {
		return "", ErrFileNotFound
	}

	info, err := os.Stat(real)
	if err != nil || !info.Mode().IsRegular() {
		return "", ErrFileNotFound
	}

	return real, nil
}

func within(root, path string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
