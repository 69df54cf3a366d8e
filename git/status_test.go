package git

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/grovetools/sweep/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStatus(t *testing.T) {
	testutil.RequireGit(t)
	ctx := context.Background()

	t.Run("invalid path", func(t *testing.T) {
		_, err := GetStatus(ctx, "/non/existent/path")
		assert.Error(t, err)
	})

	t.Run("non-git directory", func(t *testing.T) {
		tempDir := t.TempDir()
		_, err := GetStatus(ctx, tempDir)
		assert.Error(t, err)
	})

	t.Run("clean repo", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitRepo(t, tempDir)
		testutil.WriteFile(t, tempDir, "file.txt", "content")
		testutil.Commit(t, tempDir, "initial commit")

		status, err := GetStatus(ctx, tempDir)
		require.NoError(t, err)
		assert.False(t, status.IsDirty)
		assert.Equal(t, 0, status.ModifiedCount)
		assert.Equal(t, 0, status.StagedCount)
		assert.Equal(t, 0, status.UntrackedCount)
		assert.Equal(t, 0, status.AheadCount)
		assert.Equal(t, 0, status.BehindCount)
		assert.False(t, status.HasUpstream)
		assert.Equal(t, "main", status.Branch)
	})

	t.Run("with changes", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitRepo(t, tempDir)
		testutil.WriteFile(t, tempDir, "initial.txt", "initial")
		testutil.Commit(t, tempDir, "initial commit")

		// Staged file (new file that's staged but not committed)
		testutil.WriteFile(t, tempDir, "staged.txt", "staged")
		testutil.RunGit(t, tempDir, "add", "staged.txt")

		// Modified file (modify the initial file)
		testutil.WriteFile(t, tempDir, "initial.txt", "modified")

		// Untracked file
		testutil.WriteFile(t, tempDir, "untracked.txt", "untracked")

		status, err := GetStatus(ctx, tempDir)
		require.NoError(t, err)
		assert.True(t, status.IsDirty)
		assert.Equal(t, 1, status.StagedCount, "staged.txt should be staged")
		assert.Equal(t, 1, status.ModifiedCount, "initial.txt should be modified")
		assert.Equal(t, 1, status.UntrackedCount, "untracked.txt should be untracked")
	})

	t.Run("ahead of upstream", func(t *testing.T) {
		baseDir := t.TempDir()
		localDir := testutil.CleanRepo(t, baseDir, "local")

		testutil.WriteFile(t, localDir, "file2.txt", "2")
		testutil.Commit(t, localDir, "unpushed commit")

		status, err := GetStatus(ctx, localDir)
		require.NoError(t, err)
		assert.True(t, status.HasUpstream)
		assert.Equal(t, 1, status.AheadCount)
		assert.Equal(t, 0, status.BehindCount)
	})

	t.Run("no commits yet", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitRepo(t, tempDir)
		testutil.WriteFile(t, tempDir, "untracked.txt", "x")

		status, err := GetStatus(ctx, tempDir)
		require.NoError(t, err)
		assert.False(t, status.HasUpstream)
		assert.Equal(t, 1, status.UntrackedCount)
	})
}

func TestParseStatusOutput(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   StatusInfo
	}{
		{
			name: "clean with upstream in sync",
			output: "# branch.oid 1234\n" +
				"# branch.head main\n" +
				"# branch.upstream origin/main\n" +
				"# branch.ab +0 -0\n",
			want: StatusInfo{Branch: "main", HasUpstream: true},
		},
		{
			name: "ahead and behind",
			output: "# branch.oid 1234\n" +
				"# branch.head feature\n" +
				"# branch.upstream origin/feature\n" +
				"# branch.ab +3 -1\n",
			want: StatusInfo{Branch: "feature", HasUpstream: true, AheadCount: 3, BehindCount: 1},
		},
		{
			name: "untracked and modified",
			output: "# branch.head main\n" +
				"1 .M N... 100644 100644 100644 aaaa bbbb file.txt\n" +
				"1 M. N... 100644 100644 100644 aaaa bbbb staged.txt\n" +
				"? junk.txt\n",
			want: StatusInfo{
				Branch:         "main",
				ModifiedCount:  1,
				StagedCount:    1,
				UntrackedCount: 1,
				IsDirty:        true,
			},
		},
		{
			name: "unmerged entry counts both",
			output: "# branch.head main\n" +
				"u UU N... 100644 100644 100644 100644 aaaa bbbb cccc conflict.txt\n",
			want: StatusInfo{
				Branch:        "main",
				ModifiedCount: 1,
				StagedCount:   1,
				IsDirty:       true,
			},
		},
		{
			name:   "detached head",
			output: "# branch.oid 1234\n# branch.head (detached)\n",
			want:   StatusInfo{Branch: "(detached)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := parseStatusOutput(tt.output)
			assert.Equal(t, tt.want, *got)
		})
	}
}

func TestHasStash(t *testing.T) {
	testutil.RequireGit(t)
	ctx := context.Background()

	t.Run("no stash", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitRepo(t, tempDir)
		testutil.WriteFile(t, tempDir, "file.txt", "content")
		testutil.Commit(t, tempDir, "initial commit")

		has, err := HasStash(ctx, tempDir)
		require.NoError(t, err)
		assert.False(t, has)
	})

	t.Run("with stash", func(t *testing.T) {
		tempDir := t.TempDir()
		testutil.InitRepo(t, tempDir)
		testutil.WriteFile(t, tempDir, "file.txt", "content")
		testutil.Commit(t, tempDir, "initial commit")
		testutil.Stash(t, tempDir)

		has, err := HasStash(ctx, tempDir)
		require.NoError(t, err)
		assert.True(t, has)
	})

	t.Run("stash ref is per repository", func(t *testing.T) {
		baseDir := t.TempDir()
		stashed := filepath.Join(baseDir, "stashed")
		plain := filepath.Join(baseDir, "plain")
		for _, dir := range []string{stashed, plain} {
			testutil.InitRepo(t, dir)
			testutil.WriteFile(t, dir, "file.txt", "content")
			testutil.Commit(t, dir, "initial commit")
		}
		testutil.Stash(t, stashed)

		has, err := HasStash(ctx, stashed)
		require.NoError(t, err)
		assert.True(t, has)

		has, err = HasStash(ctx, plain)
		require.NoError(t, err)
		assert.False(t, has)
	})
}
