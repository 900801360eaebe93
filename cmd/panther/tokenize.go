package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"panther/internal/diag"
	"panther/internal/diagfmt"
	"panther/internal/driver"
	"panther/internal/project"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.pthr|dir...>",
	Short: "Tokenize panther source files",
	Long: `Tokenize breaks panther source files into their constituent tokens.
Directory arguments are walked for .pthr files and tokenized in parallel;
the token cache applies to file arguments only.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().Bool("cache", false, "reuse token buffers from the on-disk cache")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	switch format {
	case "pretty", "json":
	default:
		return fmt.Errorf("unknown format: %s", format)
	}

	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}

	settings, err := resolveBuildSettings(cmd, filepath.Dir(args[0]))
	if err != nil {
		return err
	}

	var cache *driver.TokenCache
	if useCache {
		cache, err = driver.OpenTokenCache("panther")
		if err != nil {
			return fmt.Errorf("failed to open token cache: %w", err)
		}
	}

	printer := diag.NewPrinter(os.Stderr, colorEnabled(settings.Color, os.Stderr))
	report := diag.DefaultCallback(printer)

	faulted := false
	for _, path := range args {
		if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
			treeFaulted, err := tokenizeTree(cmd.Context(), path, format, settings, report)
			if err != nil {
				return err
			}
			faulted = faulted || treeFaulted
			continue
		}

		result, _, err := driver.TokenizeCached(path, int(settings.MaxErrors), cache)
		if err != nil {
			return fmt.Errorf("tokenization failed: %w", err)
		}

		// Diagnostics go to stderr; the token dump stays clean on stdout.
		for _, d := range result.Bag.Items() {
			report(result.Store, d)
		}
		if result.Tokens == nil {
			faulted = true
			continue
		}

		if len(args) > 1 && format == "pretty" {
			fmt.Fprintf(os.Stdout, "== %s ==\n", path)
		}
		switch format {
		case "pretty":
			err = diagfmt.FormatTokensPretty(os.Stdout, result.File)
		case "json":
			err = diagfmt.FormatTokensJSON(os.Stdout, result.File)
		}
		if err != nil {
			return fmt.Errorf("failed to format tokens: %w", err)
		}
	}

	if faulted {
		// Diagnostics already printed; suppress cobra's own reporting.
		cmd.SilenceUsage = true
		cmd.SilenceErrors = true
		return fmt.Errorf("")
	}
	return nil
}

// tokenizeTree runs the parallel batch path over a directory and dumps each
// cleanly tokenized file in sorted order.
func tokenizeTree(ctx context.Context, dir, format string, settings buildSettings, report diag.Callback) (faulted bool, err error) {
	jobs := settings.NumThreads
	switch jobs {
	case project.NumThreadsAuto:
		jobs = 0 // TokenizeDir maps this to GOMAXPROCS
	case 0:
		jobs = 1 // a single-threaded build tokenizes one file at a time
	}

	store, results, err := driver.TokenizeDir(ctx, dir, int(settings.MaxErrors), jobs)
	if err != nil {
		return false, fmt.Errorf("tokenization failed: %w", err)
	}
	if len(results) == 0 {
		fmt.Fprintf(os.Stderr, "no panther sources under %s\n", dir)
		return false, nil
	}

	for _, res := range results {
		for _, d := range res.Bag.Items() {
			report(store, d)
		}
		if res.Bag.Len() != 0 {
			faulted = true
			continue
		}

		if format == "pretty" {
			fmt.Fprintf(os.Stdout, "== %s ==\n", res.Path)
		}
		file := store.Get(res.Source)
		switch format {
		case "pretty":
			err = diagfmt.FormatTokensPretty(os.Stdout, file)
		case "json":
			err = diagfmt.FormatTokensJSON(os.Stdout, file)
		}
		if err != nil {
			return faulted, fmt.Errorf("failed to format tokens: %w", err)
		}
	}
	return faulted, nil
}
