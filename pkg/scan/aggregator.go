package scan

import (
	"sort"
	"sync"
)

// aggregator collects verdicts from all workers. Verdicts arrive in
// arbitrary completion order; the final report is sorted by path so output
// is deterministic regardless of worker count.
type aggregator struct {
	mu      sync.Mutex
	entries map[string]Verdict
}

func newAggregator() *aggregator {
	return &aggregator{
		entries: make(map[string]Verdict),
	}
}

// record stores one verdict. Keying by path makes duplicates impossible by
// construction; the walker never emits the same root twice.
func (a *aggregator) record(e Entry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries[e.Path] = e.Verdict
}

// finalize builds the sorted result. Callers must ensure all workers have
// stopped recording first; Run calls it exactly once per scan.
func (a *aggregator) finalize(skippedDirs int) *Result {
	a.mu.Lock()
	defer a.mu.Unlock()

	res := &Result{
		Entries: make([]Entry, 0, len(a.entries)),
		Summary: Summary{SkippedDirs: skippedDirs},
	}

	for path, verdict := range a.entries {
		res.Entries = append(res.Entries, Entry{Path: path, Verdict: verdict})

		res.Summary.Total++
		switch verdict.State {
		case StateClean:
			res.Summary.Clean++
		case StateDirty:
			res.Summary.Dirty++
		case StateErrored:
			res.Summary.Errored++
		}
	}

	sort.Slice(res.Entries, func(i, j int) bool {
		return res.Entries[i].Path < res.Entries[j].Path
	})

	return res
}
