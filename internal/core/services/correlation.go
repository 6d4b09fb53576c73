package services

import (
	"path"
	"strings"

	"github.com/itsharex/ReFast-sub000/internal/core/domain"
)

// Correlated reports whether a shortcut entry plausibly points at an
// already-listed executable. It compares the shortcut's enclosing
// directory name against the executable's installation directory name
// and name stem: overlap by substring in either direction counts.
//
// This is a heuristic, not an exact match. It can over-merge (two
// different apps under one vendor directory) and under-merge (renamed
// shortcuts). Known approximation; kept isolated here so it can be
// refined against concrete failing cases without touching the
// aggregator.
func Correlated(shortcut, executable *domain.SearchResult) bool {
	if !shortcut.IsShortcut() || !executable.IsExecutable() {
		return false
	}

	shortcutDir := baseDir(shortcut.NormalizedPath)
	execDir := baseDir(executable.NormalizedPath)
	execStem := nameStem(executable.NormalizedPath)

	if overlaps(shortcutDir, execDir) {
		return true
	}
	return overlaps(shortcutDir, execStem)
}

// baseDir returns the name of the enclosing directory.
func baseDir(normalizedPath string) string {
	return path.Base(path.Dir(normalizedPath))
}

// nameStem returns the file name without its extension.
func nameStem(normalizedPath string) string {
	base := path.Base(normalizedPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// overlaps reports whether either string contains the other.
// Empty and root-ish components never overlap anything.
func overlaps(a, b string) bool {
	if len(a) < 2 || len(b) < 2 || a == ".." || b == ".." {
		return false
	}
	return strings.Contains(a, b) || strings.Contains(b, a)
}
