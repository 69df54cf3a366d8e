package cmd

import (
	"context"
	"os"
	"os/exec"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/grovetools/sweep/cli"
	"github.com/grovetools/sweep/errors"
	"github.com/grovetools/sweep/git"
	"github.com/grovetools/sweep/pkg/scan"
	"github.com/grovetools/sweep/report"
	"github.com/grovetools/sweep/util/pathutil"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the `sweep` command
func NewRootCmd() *cobra.Command {
	cmd := cli.NewStandardCommand(
		"sweep [path]",
		"Find git repositories with unpushed work",
	)
	cmd.Long = `Sweep walks a directory tree, finds every git repository beneath it, and
reports the ones with work that has not made it to a remote: uncommitted
changes, untracked files, commits ahead of the upstream, or stashes.

Dirty repository paths are printed to stdout, one per line. Diagnostics go
to stderr, so the output is safe to pipe.`

	cmd.Args = cobra.MaximumNArgs(1)

	cmd.Flags().IntP("threads", "t", 0, "Number of concurrent workers (default: available parallelism)")
	cmd.Flags().StringArrayP("exclude", "e", nil, "Exclude pattern, relative to the search path (repeatable)")
	cmd.Flags().Bool("hidden", false, "Descend into hidden directories")
	cmd.Flags().Bool("json", false, "Print the full result, verdicts included, as JSON")
	cmd.Flags().Bool("summary", false, "Print aggregate counts to stderr when the scan finishes")

	cmd.RunE = runScan

	cmd.AddCommand(NewVersionCmd())

	return cmd
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := cli.LoadConfig(cmd)
	if err != nil {
		return err
	}
	logger := cli.GetLogger(cmd, cfg)

	if _, err := exec.LookPath("git"); err != nil {
		return errors.GitNotInstalled(err)
	}

	root := "."
	if len(args) > 0 {
		root = args[0]
	}
	root, err = pathutil.Expand(root)
	if err != nil {
		return errors.InvalidRoot(root, err.Error())
	}

	workers := cfg.Threads
	if cmd.Flags().Changed("threads") {
		workers, _ = cmd.Flags().GetInt("threads")
	} else if workers == 0 {
		workers = runtime.NumCPU()
	}

	excludes, _ := cmd.Flags().GetStringArray("exclude")
	excludes = append(cfg.Exclude, excludes...)

	hidden, _ := cmd.Flags().GetBool("hidden")
	hidden = hidden || cfg.Hidden

	evaluator := git.NewStatusEvaluator(logger)
	scanner, err := scan.New(logger, evaluator, scan.Options{
		Root:     root,
		Workers:  workers,
		Excludes: excludes,
		Hidden:   hidden,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	res, runErr := scanner.Run(ctx)
	if runErr != nil {
		logger.WithError(runErr).Warn("scan interrupted; results are partial")
	}

	printer := report.NewPrinter(cmd.OutOrStdout(), cmd.ErrOrStderr())

	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		if err := printer.JSON(res); err != nil {
			return err
		}
	} else {
		printer.DirtyPaths(res)
	}

	printer.Errors(res)

	if summary, _ := cmd.Flags().GetBool("summary"); summary {
		printer.Summary(res)
	}

	// Finding dirty repositories is a successful scan; only startup
	// misconfiguration exits non-zero.
	return nil
}
