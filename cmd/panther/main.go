// Package main implements the panther CLI.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"panther/internal/project"
	"panther/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "panther",
	Short: "Panther language compiler front end",
	Long:  `Panther is a programming language compiler front end with tokenization and diagnostic tools`,
}

// main wires the subcommands and persistent flags, then executes the root
// command. Command errors exit with status code 1.
func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", project.ColorAuto, "colorize output (auto|always|never)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show per-phase timing information")
	rootCmd.PersistentFlags().Int("threads", project.NumThreadsAuto, "worker threads (-1=auto, 0=single-threaded)")
	rootCmd.PersistentFlags().Int("max-errors", 0, "stop after this many errors (0=manifest value or 20)")
	rootCmd.PersistentFlags().String("trace", "", "trace output path (\"-\" for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|basic|detail)")
	rootCmd.PersistentFlags().String("trace-mode", "stream", "trace storage mode (stream|ring)")
	rootCmd.PersistentFlags().Int("trace-ring-size", 4096, "event capacity for --trace-mode ring")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a pprof CPU profile to this path")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a pprof heap profile to this path")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a runtime execution trace to this path")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// isTerminal reports whether the file is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
