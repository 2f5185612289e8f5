// Package main is the entry point for the todo CLI.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		reportError(rootCmd, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "todo",
	Short: "todo - a small local task list",
	Long: `todo keeps a list of short tasks in a .todo/ directory.

Create tasks, mark them done, search them by title, and remove them.
Tasks are listed newest first. Storage is a single slot in a local file,
a SQLite database, or a MySQL table, chosen in .todo/config.yaml.`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

var (
	rootDir    string
	jsonOutput bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&rootDir, "dir", ".", "directory containing .todo/")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print a JSON response envelope")
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SetVersionTemplate("todo version {{.Version}}\n")
}

// errReported is returned by commands that have already printed their failure.
var errReported = errors.New("failure already reported")

// reportError prints err as a failed JSON envelope with --json, otherwise as
// an "error: " line on stderr.
func reportError(cmd *cobra.Command, err error) {
	if errors.Is(err, errReported) {
		return
	}
	if jsonOutput {
		if werr := cli.Failure(err).Write(cmd.OutOrStdout()); werr == nil {
			return
		}
	}
	fmt.Fprintln(cmd.ErrOrStderr(), cli.Red(cli.FormatError(err)))
}
