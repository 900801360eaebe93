package main

import (
	"fmt"
	"math"
	"os"

	"github.com/spf13/cobra"

	"panther/internal/project"
)

// buildSettings are the effective session knobs for one invocation.
// Persistent flags override panther.toml, which overrides built-in defaults.
type buildSettings struct {
	NumThreads int
	MaxErrors  uint32
	Color      string
}

// resolveBuildSettings merges the manifest governing startDir with any
// explicitly set persistent flags. A flag left at its default defers to the
// manifest; an explicit flag always wins, including `--threads=-1` to force
// auto thread selection over a manifest pin.
func resolveBuildSettings(cmd *cobra.Command, startDir string) (buildSettings, error) {
	manifest, _, err := project.Resolve(startDir)
	if err != nil {
		return buildSettings{}, err
	}

	settings := buildSettings{
		NumThreads: manifest.Build.NumThreads,
		MaxErrors:  manifest.Build.MaxErrors,
		Color:      manifest.Build.Color,
	}

	flags := cmd.Root().PersistentFlags()

	if flags.Changed("threads") {
		threads, err := flags.GetInt("threads")
		if err != nil {
			return buildSettings{}, fmt.Errorf("failed to get threads flag: %w", err)
		}
		if threads < project.NumThreadsAuto {
			return buildSettings{}, fmt.Errorf("invalid --threads value %d (expected -1, 0, or a worker count)", threads)
		}
		settings.NumThreads = threads
	}

	if flags.Changed("max-errors") {
		maxErrors, err := flags.GetInt("max-errors")
		if err != nil {
			return buildSettings{}, fmt.Errorf("failed to get max-errors flag: %w", err)
		}
		if maxErrors < 1 || int64(maxErrors) > math.MaxUint32 {
			return buildSettings{}, fmt.Errorf("invalid --max-errors value %d (expected a positive count)", maxErrors)
		}
		settings.MaxErrors = uint32(maxErrors)
	}

	if flags.Changed("color") {
		mode, err := flags.GetString("color")
		if err != nil {
			return buildSettings{}, fmt.Errorf("failed to get color flag: %w", err)
		}
		switch mode {
		case project.ColorAuto, project.ColorAlways, project.ColorNever:
			settings.Color = mode
		default:
			return buildSettings{}, fmt.Errorf("invalid --color value %q (expected auto|always|never)", mode)
		}
	}

	return settings, nil
}

// colorEnabled resolves a color mode against the given output stream.
func colorEnabled(mode string, f *os.File) bool {
	switch mode {
	case project.ColorAlways:
		return true
	case project.ColorNever:
		return false
	default:
		return isTerminal(f)
	}
}

// quietEnabled reads the persistent --quiet flag.
func quietEnabled(cmd *cobra.Command) (bool, error) {
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return false, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	return quiet, nil
}
