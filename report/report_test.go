package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/grovetools/sweep/pkg/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult() *scan.Result {
	return &scan.Result{
		Entries: []scan.Entry{
			{Path: "/src/broken", Verdict: scan.Errored("bad object HEAD")},
			{Path: "/src/clean-repo", Verdict: scan.Clean()},
			{Path: "/src/nasty-repo", Verdict: scan.Dirty(scan.ReasonUntracked)},
			{Path: "/src/wip", Verdict: scan.Dirty(scan.ReasonUncommitted, scan.ReasonStash)},
		},
		Summary: scan.Summary{Total: 4, Clean: 1, Dirty: 2, Errored: 1},
	}
}

func TestDirtyPaths(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	p.DirtyPaths(sampleResult())

	assert.Equal(t, "/src/nasty-repo\n/src/wip\n", out.String())
	assert.Empty(t, errOut.String(), "stdout output must not be mixed with diagnostics")
}

func TestJSON(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	require.NoError(t, p.JSON(sampleResult()))

	var decoded scan.Result
	require.NoError(t, json.Unmarshal(out.Bytes(), &decoded))
	assert.Len(t, decoded.Entries, 4)
	assert.Equal(t, 2, decoded.Summary.Dirty)
	assert.Equal(t, scan.StateDirty, decoded.Entries[2].Verdict.State)
	assert.Equal(t, []scan.Reason{scan.ReasonUntracked}, decoded.Entries[2].Verdict.Reasons)
}

func TestSummary(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	res := sampleResult()
	res.Summary.SkippedDirs = 3
	p.Summary(res)

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "swept 4 repositories")
	assert.Contains(t, errOut.String(), "1 clean")
	assert.Contains(t, errOut.String(), "2 dirty")
	assert.Contains(t, errOut.String(), "1 errored")
	assert.Contains(t, errOut.String(), "3 unreadable dirs skipped")
}

func TestErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	p.Errors(sampleResult())

	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "/src/broken")
	assert.Contains(t, errOut.String(), "bad object HEAD")
}

func TestErrorsEmpty(t *testing.T) {
	var out, errOut bytes.Buffer
	p := NewPrinter(&out, &errOut)

	p.Errors(&scan.Result{})

	assert.Empty(t, errOut.String())
}
