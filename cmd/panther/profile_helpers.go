package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"panther/internal/prof"
)

// setupProfiling inspects the persistent profiling flags and starts the
// requested profilers. The returned cleanup is safe to call multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	root := cmd.Root()

	cpuProfile, err := root.PersistentFlags().GetString("cpu-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpu-profile flag: %w", err)
	}
	memProfile, err := root.PersistentFlags().GetString("mem-profile")
	if err != nil {
		return nil, fmt.Errorf("failed to get mem-profile flag: %w", err)
	}
	tracePath, err := root.PersistentFlags().GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	stop, err := prof.Start(prof.Profiles{
		CPUPath:   cpuProfile,
		HeapPath:  memProfile,
		TracePath: tracePath,
	})
	if err != nil {
		return nil, err
	}

	return func() {
		if err := stop(); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}, nil
}
