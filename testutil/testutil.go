// Package testutil builds throwaway git repositories for tests. Every
// helper shells out to the real git binary so fixtures behave exactly like
// the repositories sweep scans in production.
package testutil

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// RunGit executes a git command in dir and fails the test on error.
func RunGit(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %s failed: %v\noutput: %s", strings.Join(args, " "), err, string(output))
	}
}

// RequireGit skips the test if the git binary is not available.
func RequireGit(t *testing.T) {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not available")
	}
}

// InitRepo initializes a git repository with a main branch and test user.
func InitRepo(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	RunGit(t, dir, "init", "--initial-branch=main")
	RunGit(t, dir, "config", "user.name", "Test User")
	RunGit(t, dir, "config", "user.email", "test@example.com")
}

// WriteFile writes content to a file inside the repository.
func WriteFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create parent of %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

// Commit stages everything and commits.
func Commit(t *testing.T, dir, message string) {
	t.Helper()
	RunGit(t, dir, "add", "-A")
	RunGit(t, dir, "commit", "-m", message)
}

// InitBareRemote creates a bare repository suitable as a push target and
// returns its path.
func InitBareRemote(t *testing.T, dir string) string {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	RunGit(t, dir, "init", "--bare", "--initial-branch=main")
	return dir
}

// PushUpstream wires origin to the given remote and pushes main with
// upstream tracking.
func PushUpstream(t *testing.T, repoDir, remotePath string) {
	t.Helper()
	RunGit(t, repoDir, "remote", "add", "origin", remotePath)
	RunGit(t, repoDir, "push", "-u", "origin", "main")
}

// Stash modifies a committed file and stashes the change, leaving the
// working tree clean but refs/stash populated.
func Stash(t *testing.T, dir string) {
	t.Helper()
	WriteFile(t, dir, "stashed.txt", "stash me")
	RunGit(t, dir, "add", "stashed.txt")
	RunGit(t, dir, "stash", "push", "-m", "test stash")
}

// CleanRepo builds a repository with one commit pushed to a bare remote:
// nothing uncommitted, nothing untracked, nothing unpushed.
func CleanRepo(t *testing.T, baseDir, name string) string {
	t.Helper()
	repoDir := filepath.Join(baseDir, name)
	remoteDir := InitBareRemote(t, filepath.Join(baseDir, name+"-remote.git"))

	InitRepo(t, repoDir)
	WriteFile(t, repoDir, "README.md", "# "+name+"\n")
	Commit(t, repoDir, "initial commit")
	PushUpstream(t, repoDir, remoteDir)
	return repoDir
}
