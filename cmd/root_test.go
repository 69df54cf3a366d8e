package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/grovetools/sweep/errors"
	"github.com/grovetools/sweep/pkg/scan"
	"github.com/grovetools/sweep/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	// Keep the scan away from any user-level sweep.yml.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestScanCleanAndNastyRepo(t *testing.T) {
	testutil.RequireGit(t)

	root := t.TempDir()
	testutil.CleanRepo(t, root, "clean-repo")

	nasty := filepath.Join(root, "nasty-repo")
	testutil.InitRepo(t, nasty)
	testutil.WriteFile(t, nasty, "forgotten.txt", "work in progress")

	out, _, err := execute(t, root)
	require.NoError(t, err)

	assert.Equal(t, nasty+"\n", out, "only the dirty repository is listed")
}

func TestScanEmptyTree(t *testing.T) {
	testutil.RequireGit(t)

	out, _, err := execute(t, t.TempDir())
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestScanJSONOutput(t *testing.T) {
	testutil.RequireGit(t)

	root := t.TempDir()
	nasty := filepath.Join(root, "nasty-repo")
	testutil.InitRepo(t, nasty)
	testutil.WriteFile(t, nasty, "forgotten.txt", "wip")

	out, _, err := execute(t, root, "--json")
	require.NoError(t, err)

	var res scan.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	require.Len(t, res.Entries, 1)
	assert.Equal(t, nasty, res.Entries[0].Path)
	assert.Equal(t, scan.StateDirty, res.Entries[0].Verdict.State)
	assert.Equal(t, []scan.Reason{scan.ReasonUntracked}, res.Entries[0].Verdict.Reasons)
	assert.Equal(t, 1, res.Summary.Dirty)
}

func TestScanSummaryGoesToStderr(t *testing.T) {
	testutil.RequireGit(t)

	root := t.TempDir()
	testutil.CleanRepo(t, root, "clean-repo")

	out, errOut, err := execute(t, root, "--summary")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Contains(t, errOut, "swept 1 repositories")
}

func TestScanInvalidPath(t *testing.T) {
	testutil.RequireGit(t)

	_, _, err := execute(t, "/does/not/exist")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidRoot))
	assert.True(t, errors.IsFatal(err))
}

func TestScanRejectsZeroThreads(t *testing.T) {
	testutil.RequireGit(t)

	_, _, err := execute(t, t.TempDir(), "--threads", "0")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidWorkers))
}

func TestScanExcludeFlag(t *testing.T) {
	testutil.RequireGit(t)

	root := t.TempDir()
	for _, name := range []string{"keep", "skip"} {
		repo := filepath.Join(root, name)
		testutil.InitRepo(t, repo)
		testutil.WriteFile(t, repo, "wip.txt", "wip")
	}

	out, _, err := execute(t, root, "--exclude", "skip")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "keep")+"\n", out)
}
