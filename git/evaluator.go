// Package git evaluates the state of individual repositories by invoking
// the git CLI. It never mutates a repository and never talks to a remote:
// "unpushed" is judged purely against the locally known remote-tracking
// state.
package git

import (
	"context"
	"strings"

	"github.com/grovetools/sweep/pkg/scan"
	"github.com/sirupsen/logrus"
)

// StatusEvaluator classifies a repository as clean or dirty from four
// independent signals: uncommitted changes, untracked files, commits ahead
// of the upstream, and stashes. All signals are checked; the verdict carries
// every applicable reason rather than the first match.
type StatusEvaluator struct {
	logger *logrus.Entry
}

// Ensure it implements the interface
var _ scan.Evaluator = (*StatusEvaluator)(nil)

// NewStatusEvaluator creates a git-CLI backed evaluator.
func NewStatusEvaluator(logger *logrus.Entry) *StatusEvaluator {
	return &StatusEvaluator{logger: logger}
}

// Evaluate determines the verdict for one repository. Failures are confined
// to that repository: the returned Errored verdict reports the cause and the
// scan carries on.
func (e *StatusEvaluator) Evaluate(ctx context.Context, repoPath string) scan.Verdict {
	status, err := GetStatus(ctx, repoPath)
	if err != nil {
		if strings.Contains(err.Error(), "must be run in a work tree") {
			// Bare repository, or a gitfile pointing nowhere.
			e.logger.WithField("repo", repoPath).Warn("repository has no work tree")
		} else {
			e.logger.WithFields(logrus.Fields{
				"repo":  repoPath,
				"error": err,
			}).Warn("failed to check repository")
		}
		return scan.Errored(err.Error())
	}

	var reasons []scan.Reason
	if status.ModifiedCount > 0 || status.StagedCount > 0 {
		reasons = append(reasons, scan.ReasonUncommitted)
	}
	if status.UntrackedCount > 0 {
		reasons = append(reasons, scan.ReasonUntracked)
	}
	// Without an upstream there is nothing to compare against, so the
	// unpushed check is skipped rather than treated as dirty.
	if status.HasUpstream && status.AheadCount > 0 {
		reasons = append(reasons, scan.ReasonUnpushed)
	}

	stash, err := HasStash(ctx, repoPath)
	if err != nil {
		// The other signals remain valid; record the probe failure and
		// move on.
		e.logger.WithFields(logrus.Fields{
			"repo":  repoPath,
			"error": err,
		}).Debug("stash check failed")
	} else if stash {
		reasons = append(reasons, scan.ReasonStash)
	}

	if len(reasons) == 0 {
		e.logger.WithField("repo", repoPath).Debug("repository is clean")
		return scan.Clean()
	}

	e.logger.WithFields(logrus.Fields{
		"repo":    repoPath,
		"reasons": reasons,
	}).Debug("repository is dirty")
	return scan.Dirty(reasons...)
}
