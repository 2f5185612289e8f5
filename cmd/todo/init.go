package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/storage"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize a new todo directory",
	Long: `Create a .todo/ directory with a default config.yaml.

The default configuration stores tasks as JSON in .todo/data/todos.json.
Edit config.yaml, or set TODO_BACKEND, TODO_FORMAT, ... to change it.

Fails if .todo/ already exists.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := storage.Init(rootDir)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return cli.Success("initialized", cfg).Write(out)
	}
	fmt.Fprintf(out, "Initialized todo in %s\n", storage.ConfigPath(rootDir))
	fmt.Fprintf(out, "Backend: %s, format: %s, key: %s\n", cfg.Backend, cfg.Format, cfg.Key)
	return nil
}
