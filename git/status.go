package git

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/grovetools/sweep/command"
)

// StatusInfo contains detailed git status information for a repository
type StatusInfo struct {
	// Branch is the current branch name
	Branch string `json:"branch"`

	// AheadCount is the number of commits ahead of the upstream branch
	AheadCount int `json:"ahead_count"`

	// BehindCount is the number of commits behind the upstream branch
	BehindCount int `json:"behind_count"`

	// ModifiedCount is the number of files modified in the working tree
	ModifiedCount int `json:"modified_count"`

	// UntrackedCount is the number of untracked files
	UntrackedCount int `json:"untracked_count"`

	// StagedCount is the number of staged files
	StagedCount int `json:"staged_count"`

	// IsDirty indicates if there are any uncommitted changes
	IsDirty bool `json:"is_dirty"`

	// HasUpstream indicates if the branch has an upstream tracking branch
	HasUpstream bool `json:"has_upstream"`
}

// GetStatus returns detailed git status information for the repository at
// the given path.
func GetStatus(ctx context.Context, path string) (*StatusInfo, error) {
	cmdBuilder := command.NewSafeBuilder()

	// Use git status --porcelain=v2 --branch for a single, efficient call
	cmd, err := cmdBuilder.Build(ctx, "git", "status", "--porcelain=v2", "--branch")
	if err != nil {
		return nil, fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = path
	output, err := execCmd.Output()
	if err != nil {
		stderr := commandStderr(err)
		if strings.Contains(stderr, "not a git repository") {
			return nil, fmt.Errorf("not a git repository: %s", path)
		}
		if stderr != "" {
			return nil, fmt.Errorf("failed to get git status: %w, output: %s", err, stderr)
		}
		return nil, fmt.Errorf("failed to get git status: %w", err)
	}

	return parseStatusOutput(string(output)), nil
}

// commandStderr extracts captured stderr from an exec error, if any.
func commandStderr(err error) string {
	if exitErr, ok := err.(*exec.ExitError); ok {
		return strings.TrimSpace(string(exitErr.Stderr))
	}
	return ""
}

// parseStatusOutput interprets `git status --porcelain=v2 --branch` output.
func parseStatusOutput(output string) *StatusInfo {
	status := &StatusInfo{}
	lines := strings.Split(output, "\n")

	for _, line := range lines {
		if line == "" {
			continue
		}

		// Parse header lines (start with '#')
		if strings.HasPrefix(line, "# ") {
			parts := strings.Fields(line)
			if len(parts) < 3 {
				continue
			}
			switch parts[1] {
			case "branch.head":
				status.Branch = parts[2]
			case "branch.upstream":
				status.HasUpstream = true
			case "branch.ab":
				// format is +<ahead> -<behind>
				if len(parts) > 2 {
					aheadStr := strings.TrimPrefix(parts[2], "+")
					status.AheadCount, _ = strconv.Atoi(aheadStr)
				}
				if len(parts) > 3 {
					behindStr := strings.TrimPrefix(parts[3], "-")
					status.BehindCount, _ = strconv.Atoi(behindStr)
				}
			}
			continue
		}

		// Parse file status lines
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "?": // Untracked
			status.UntrackedCount++
		case "1", "2": // Changed entries (1 for normal, 2 for rename/copy)
			if len(parts) < 2 {
				continue
			}
			xy := parts[1]
			if len(xy) < 2 {
				continue
			}
			staged := xy[0]
			working := xy[1]

			// Staged changes are indicated by any letter other than '.'
			if staged != '.' {
				status.StagedCount++
			}
			// Modified changes in the working tree (. means unchanged)
			if working != '.' {
				status.ModifiedCount++
			}
		case "u", "U": // Unmerged
			status.StagedCount++
			status.ModifiedCount++
		}
	}

	status.IsDirty = status.ModifiedCount > 0 || status.UntrackedCount > 0 || status.StagedCount > 0

	return status
}

// HasStash reports whether the repository has stashed changes.
func HasStash(ctx context.Context, path string) (bool, error) {
	cmdBuilder := command.NewSafeBuilder()
	cmd, err := cmdBuilder.Build(ctx, "git", "rev-parse", "--verify", "--quiet", "refs/stash")
	if err != nil {
		return false, fmt.Errorf("failed to build command: %w", err)
	}
	execCmd := cmd.Exec()
	execCmd.Dir = path
	if err := execCmd.Run(); err != nil {
		// A nonzero exit just means refs/stash does not exist.
		if _, ok := err.(*exec.ExitError); ok {
			return false, nil
		}
		return false, fmt.Errorf("failed to check stash: %w", err)
	}
	return true, nil
}
