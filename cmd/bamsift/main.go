package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/hupe1980/bamsift"
)

var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		threads int
		reads   []string
		verbose int
	)

	cmd := &cobra.Command{
		Use:   "bamsift [flags] <input.bam>",
		Short: "Split a BAM file into one output per read-name list",
		Long: `bamsift splits a BAM file across multiple outputs keyed by read name.

Each --reads file lists one read name per line and produces one output BAM
next to it, named after the list with its extension replaced by ".bam".
A record goes to the first list containing its query name; the name is
consumed on match, so overlapping lists express precedence. Records found
in no list are dropped and counted.`,
		Args:          cobra.ExactArgs(1),
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := bamsift.NewTextLogger(logLevel(verbose))

			s := bamsift.New(
				bamsift.WithThreads(threads),
				bamsift.WithLogger(logger),
			)
			_, err := s.Split(cmd.Context(), args[0], reads)
			return err
		},
	}

	cmd.Flags().IntVarP(&threads, "threads", "t", 16, "threads for bam read and write")
	cmd.Flags().StringArrayVarP(&reads, "reads", "r", nil, "text file with read names to split on (repeatable)")
	cmd.Flags().CountVarP(&verbose, "verbose", "v", "logging level (-v info, -vv debug, -vvv trace)")

	return cmd
}

func logLevel(verbose int) slog.Level {
	switch verbose {
	case 0:
		return slog.LevelWarn
	case 1:
		return slog.LevelInfo
	case 2:
		return slog.LevelDebug
	default:
		return bamsift.LevelTrace
	}
}
