// Package scan implements the concurrent scan-and-classify engine: a
// deterministic directory walker that discovers git repository roots, a
// bounded worker pool that evaluates each repository in parallel, and an
// aggregator that folds the verdicts into one sorted report.
package scan

import (
	"context"
	"os"
	"path/filepath"
	"sync"

	"github.com/grovetools/sweep/errors"
	"github.com/moby/patternmatcher"
	"github.com/sirupsen/logrus"
)

// workQueueDepth bounds the handoff channel between the walker and the
// workers. On very large trees this applies backpressure on the walker
// instead of queueing every discovered repository in memory.
const workQueueDepth = 64

// Options configures a scan. Immutable once the scan starts.
type Options struct {
	// Root is the directory to search.
	Root string

	// Workers is the number of concurrent evaluators. Callers resolve the
	// "available parallelism" default before constructing the scanner; a
	// non-positive value here is a fatal configuration error.
	Workers int

	// Excludes are dockerignore-style patterns matched against paths
	// relative to Root.
	Excludes []string

	// Hidden includes dot-directories in the traversal.
	Hidden bool
}

// Scanner coordinates one scan. The logger is an explicitly passed
// diagnostic sink so tests can capture emitted events.
type Scanner struct {
	opts    Options
	logger  *logrus.Entry
	eval    Evaluator
	matcher *patternmatcher.PatternMatcher
}

// New validates the options and builds a scanner. Validation failures are
// fatal configuration errors: they abort before any work begins.
func New(logger *logrus.Entry, eval Evaluator, opts Options) (*Scanner, error) {
	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, errors.InvalidRoot(opts.Root, "path does not exist")
	}
	if !info.IsDir() {
		return nil, errors.InvalidRoot(opts.Root, "not a directory")
	}

	if opts.Workers <= 0 {
		return nil, errors.InvalidWorkers(opts.Workers)
	}

	opts.Root = filepath.Clean(opts.Root)

	var matcher *patternmatcher.PatternMatcher
	if len(opts.Excludes) > 0 {
		matcher, err = patternmatcher.New(opts.Excludes)
		if err != nil {
			return nil, errors.Wrap(err, errors.ErrCodeConfigInvalid, "invalid exclude pattern")
		}
	}

	return &Scanner{
		opts:    opts,
		logger:  logger,
		eval:    eval,
		matcher: matcher,
	}, nil
}

// Run walks the tree, evaluates every discovered repository on the worker
// pool, and returns the finalized result. It blocks until the walker has
// exhausted the tree and every queued item has been evaluated.
//
// Cancelling the context stops the walker, lets in-flight evaluations
// finish, and drains the rest of the queue unevaluated; the partial result
// is still returned alongside the context's error.
func (s *Scanner) Run(ctx context.Context) (*Result, error) {
	s.logger.WithFields(logrus.Fields{
		"root":    s.opts.Root,
		"workers": s.opts.Workers,
	}).Info("starting repository scan")

	work := make(chan string, workQueueDepth)
	agg := newAggregator()

	w := &walker{
		logger:  s.logger,
		matcher: s.matcher,
		hidden:  s.opts.Hidden,
		root:    s.opts.Root,
	}

	// Single producer: closing the channel is the end-of-work signal the
	// workers drain against.
	go func() {
		defer close(work)
		w.walk(ctx, s.opts.Root, work)
	}()

	var wg sync.WaitGroup
	for i := 0; i < s.opts.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range work {
				if ctx.Err() != nil {
					// Drain without evaluating after cancellation.
					continue
				}
				agg.record(Entry{Path: path, Verdict: s.eval.Evaluate(ctx, path)})
			}
		}()
	}

	wg.Wait()

	res := agg.finalize(w.skippedDirs)
	s.logger.WithFields(logrus.Fields{
		"total":   res.Summary.Total,
		"clean":   res.Summary.Clean,
		"dirty":   res.Summary.Dirty,
		"errored": res.Summary.Errored,
		"skipped": res.Summary.SkippedDirs,
	}).Info("scan complete")

	return res, ctx.Err()
}
