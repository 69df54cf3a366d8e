package scan

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
)

// IsRepoRoot reports whether dir is the top level of a git repository. A
// .git entry of any kind counts: linked worktrees and submodules carry a
// gitfile instead of a directory.
func IsRepoRoot(dir string) bool {
	_, err := os.Lstat(filepath.Join(dir, ".git"))
	return err == nil
}

// walker discovers repository roots beneath a single search root. It runs in
// one goroutine and recurses with os.ReadDir, whose sorted entries make the
// traversal deterministic. Symlinked directories are never followed, so
// cyclic link structures terminate.
type walker struct {
	logger  *logrus.Entry
	matcher *patternmatcher.PatternMatcher
	hidden  bool
	root    string

	skippedDirs int
}

// walk emits every repository root under dir into out and returns false when
// the context is cancelled. Once a directory is identified as a repository
// root the walker never descends beneath it.
func (w *walker) walk(ctx context.Context, dir string, out chan<- string) bool {
	if ctx.Err() != nil {
		return false
	}

	if IsRepoRoot(dir) {
		w.logger.WithField("repo", dir).Info("found repository")
		select {
		case out <- dir:
			return true
		case <-ctx.Done():
			return false
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		// Unreadable directories are a walk-level warning, never fatal.
		w.skippedDirs++
		w.logger.WithFields(logrus.Fields{
			"dir":   dir,
			"error": err,
		}).Warn("skipping unreadable directory")
		return true
	}

	for _, entry := range entries {
		// IsDir is false for symlinks regardless of their target.
		if !entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !w.hidden && strings.HasPrefix(name, ".") {
			continue
		}

		sub := filepath.Join(dir, name)
		if w.excluded(sub) {
			w.logger.WithField("dir", sub).Debug("excluded by pattern")
			continue
		}

		if !w.walk(ctx, sub, out) {
			return false
		}
	}

	return true
}

func (w *walker) excluded(dir string) bool {
	if w.matcher == nil {
		return false
	}
	rel, err := filepath.Rel(w.root, dir)
	if err != nil {
		return false
	}
	matched, err := w.matcher.MatchesOrParentMatches(rel)
	if err != nil {
		w.logger.WithFields(logrus.Fields{
			"dir":   dir,
			"error": err,
		}).Debug("exclude pattern match failed")
		return false
	}
	return matched
}
