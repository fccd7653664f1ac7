// Package main provides the lossgraph CLI.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/born-ml/lossgraph/internal/loss"
	"github.com/spf13/cobra"
)

const version = "v0.1.0-dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lossgraph",
		Short:         "Evaluate symbolic loss functions on concrete data",
		SilenceUsage: true,
	}
	root.AddCommand(newVersionCmd(), newListCmd(), newEvalCmd())
	return root
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "lossgraph %s\n", version)
		},
	}
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered loss functions and their aliases",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			for _, name := range loss.Names() {
				line := name
				if aliases := loss.Default.Aliases(name); len(aliases) > 0 {
					line += " (" + strings.Join(aliases, ", ") + ")"
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
		},
	}
}

// newLogger returns a text logger on the command's stderr.
func newLogger(cmd *cobra.Command, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
}
