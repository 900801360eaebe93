package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"panther/internal/diag"
	"panther/internal/driver"
	"panther/internal/observ"
	"panther/internal/pipeline"
	"panther/internal/project"
	"panther/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Load and tokenize panther sources through the session scheduler",
	Long: `Check loads every panther source under the given path (or the enclosing
project root when omitted) and tokenizes it, reporting diagnostics as they
surface. The error budget and thread count come from panther.toml unless
overridden with --max-errors and --threads.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().String("ui", "auto", "progress UI (auto|on|off)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	cleanup, err := setupTracing(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	quiet, err := quietEnabled(cmd)
	if err != nil {
		return err
	}

	target, startDir, err := resolveCheckTarget(args)
	if err != nil {
		return err
	}

	settings, err := resolveBuildSettings(cmd, startDir)
	if err != nil {
		return err
	}

	files, err := collectCheckFiles(target)
	if err != nil {
		return err
	}
	files = pipeline.NormalizeFiles(files, "")
	if len(files) == 0 {
		if !quiet {
			fmt.Fprintf(os.Stdout, "no panther sources under %s\n", target)
		}
		return nil
	}

	numThreads := settings.NumThreads
	if numThreads == project.NumThreadsAuto {
		numThreads = driver.OptimalNumThreads()
	}

	useTUI := shouldUseTUI(uiModeValue) && !quiet

	// During a TUI run diagnostics are held back so they do not interleave
	// with redraws; they flush to stderr once the program exits.
	var held lockedBuffer
	diagOut := io.Writer(os.Stderr)
	if useTUI {
		diagOut = &held
	}
	printer := diag.NewPrinter(diagOut, colorEnabled(settings.Color, os.Stderr))
	callback := diag.DefaultCallback(printer)

	timer := observ.NewTimer()

	run := func(sink pipeline.ProgressSink) checkOutcome {
		cfg := driver.Config{
			NumThreads:   numThreads,
			MaxNumErrors: settings.MaxErrors,
			Tracer:       trace.FromContext(cmd.Context()),
			Progress:     sink,
		}
		ses := driver.NewSession(cfg, callback)
		if ses.IsMultiThreaded() {
			ses.StartupThreads()
			defer ses.ShutdownThreads()
		}

		loadPhase := timer.Begin("load")
		ses.LoadFiles(files)
		if ses.IsMultiThreaded() && !ses.HasHitFailCondition() {
			ses.WaitForAllTasks()
		}
		timer.End(loadPhase, fmt.Sprintf("%d file(s)", len(files)))

		if !ses.HasHitFailCondition() {
			tokenizePhase := timer.Begin("tokenize")
			ses.TokenizeLoadedFiles()
			if ses.IsMultiThreaded() && !ses.HasHitFailCondition() {
				ses.WaitForAllTasks()
			}
			timer.End(tokenizePhase, fmt.Sprintf("%d file(s)", ses.Store().NumSources()))
		}

		return checkOutcome{
			sources:          ses.Store().NumSources(),
			errors:           ses.NumErrors(),
			hitFailCondition: ses.HasHitFailCondition(),
		}
	}

	var outcome checkOutcome
	if useTUI {
		var uiErr error
		outcome, uiErr = runCheckWithUI("panther check", files, run)
		held.FlushTo(os.Stderr)
		if uiErr != nil {
			return uiErr
		}
	} else {
		outcome = run(nil)
	}

	if showTimings {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if outcome.errors > 0 || outcome.hitFailCondition {
		if !quiet {
			fmt.Fprintf(os.Stdout, "checked %d file(s): %d error(s)\n", outcome.sources, outcome.errors)
		}
		// Diagnostics already printed; suppress cobra's own reporting.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "checked %d file(s), no errors\n", outcome.sources)
	}
	return nil
}

// resolveCheckTarget picks the path to scan and the directory the manifest
// search starts from. Without an argument the enclosing project root wins
// over the bare working directory.
func resolveCheckTarget(args []string) (target, startDir string, err error) {
	if len(args) == 0 || filepath.Clean(args[0]) == "." {
		root, ok, err := project.FindProjectRoot(".")
		if err != nil {
			return "", "", err
		}
		if ok {
			return root, root, nil
		}
		return ".", ".", nil
	}

	target = filepath.Clean(args[0])
	if st, err := os.Stat(target); err == nil && !st.IsDir() {
		return target, filepath.Dir(target), nil
	}
	return target, target, nil
}

// collectCheckFiles expands a directory target into its .pthr files. A
// missing path is passed through untouched: the load task reports it with
// the proper diagnostic instead of the CLI short-circuiting.
func collectCheckFiles(target string) ([]string, error) {
	st, err := os.Stat(target)
	if err != nil {
		return []string{target}, nil
	}
	if !st.IsDir() {
		return []string{target}, nil
	}
	files, err := driver.ListSourceFiles(target)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", target, err)
	}
	return files, nil
}
