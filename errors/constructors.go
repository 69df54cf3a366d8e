package errors

import (
	"fmt"
	"os/exec"
)

// InvalidRoot creates an invalid search root error
func InvalidRoot(path string, reason string) *SweepError {
	return New(ErrCodeInvalidRoot, fmt.Sprintf("invalid search path %s: %s", path, reason)).
		WithDetail("path", path)
}

// InvalidWorkers creates an invalid worker count error
func InvalidWorkers(count int) *SweepError {
	return New(ErrCodeInvalidWorkers, fmt.Sprintf("worker count must be positive, got %d", count)).
		WithDetail("workers", count)
}

// ConfigInvalid creates an invalid configuration error
func ConfigInvalid(reason string) *SweepError {
	return New(ErrCodeConfigInvalid, fmt.Sprintf("invalid configuration: %s", reason))
}

// GitNotInstalled creates an error for a missing git binary
func GitNotInstalled(err error) *SweepError {
	return Wrap(err, ErrCodeGitNotInstalled, "git executable not found in PATH")
}

// StatusFailed creates a status evaluation failure error
func StatusFailed(repoPath string, err error) *SweepError {
	sweepErr := Wrap(err, ErrCodeStatusFailed, fmt.Sprintf("could not determine status of %s", repoPath)).
		WithDetail("repo", repoPath)

	// Extract exit code if available
	if exitErr, ok := err.(*exec.ExitError); ok {
		sweepErr = sweepErr.WithDetail("exitCode", exitErr.ExitCode())
	}

	return sweepErr
}

// PermissionDenied creates a permission denied error for a directory
func PermissionDenied(path string, err error) *SweepError {
	return Wrap(err, ErrCodePermissionDenied, fmt.Sprintf("cannot read directory %s", path)).
		WithDetail("path", path)
}
