package scan

import "context"

// State classifies a repository after evaluation.
type State string

const (
	StateClean   State = "clean"
	StateDirty   State = "dirty"
	StateErrored State = "errored"
)

// Reason identifies one signal of unpushed work. The set is closed:
// what counts as dirty is fixed domain knowledge, not a plugin point.
type Reason string

const (
	ReasonUncommitted Reason = "uncommitted-changes"
	ReasonUntracked   Reason = "untracked-files"
	ReasonUnpushed    Reason = "unpushed-commits"
	ReasonStash       Reason = "stash"
)

// Verdict is the outcome of evaluating a single repository. It is produced
// once per repository and immutable afterwards.
type Verdict struct {
	State   State    `json:"state"`
	Reasons []Reason `json:"reasons,omitempty"`
	Cause   string   `json:"cause,omitempty"`
}

// Clean returns the verdict for a repository with nothing unpushed.
func Clean() Verdict {
	return Verdict{State: StateClean}
}

// Dirty returns a verdict carrying the full set of applicable reasons.
// With no reasons the repository is clean.
func Dirty(reasons ...Reason) Verdict {
	if len(reasons) == 0 {
		return Clean()
	}
	return Verdict{State: StateDirty, Reasons: reasons}
}

// Errored returns the verdict for a repository whose state could not be
// determined.
func Errored(cause string) Verdict {
	return Verdict{State: StateErrored, Cause: cause}
}

// IsDirty reports whether the repository has unpushed work.
func (v Verdict) IsDirty() bool {
	return v.State == StateDirty
}

// HasReason reports whether the verdict includes the given reason.
func (v Verdict) HasReason(r Reason) bool {
	for _, reason := range v.Reasons {
		if reason == r {
			return true
		}
	}
	return false
}

// Evaluator determines the state of one repository. Implementations must be
// safe for concurrent use: the worker pool calls Evaluate from all workers
// simultaneously. The concrete mechanism (git CLI, direct metadata
// inspection) is swappable behind this interface.
type Evaluator interface {
	Evaluate(ctx context.Context, repoPath string) Verdict
}

// Entry pairs a discovered repository with its verdict.
type Entry struct {
	Path    string  `json:"path"`
	Verdict Verdict `json:"verdict"`
}

// Summary holds the aggregate counts derived from a completed scan.
type Summary struct {
	Total       int `json:"total"`
	Clean       int `json:"clean"`
	Dirty       int `json:"dirty"`
	Errored     int `json:"errored"`
	SkippedDirs int `json:"skipped_dirs"`
}

// Result is the finalized outcome of a scan: one entry per discovered
// repository, sorted by path.
type Result struct {
	Entries []Entry `json:"repositories"`
	Summary Summary `json:"summary"`
}

// Dirty returns the entries with unpushed work, in path order.
func (r *Result) Dirty() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Verdict.IsDirty() {
			out = append(out, e)
		}
	}
	return out
}

// Errored returns the entries whose state could not be determined, in path
// order.
func (r *Result) Errored() []Entry {
	var out []Entry
	for _, e := range r.Entries {
		if e.Verdict.State == StateErrored {
			out = append(out, e)
		}
	}
	return out
}
