package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Create a new task",
	Long: `Create a new task with the given title.

Arguments are joined with spaces, so quoting is optional. Surrounding
whitespace is trimmed and an empty title is rejected.

Use -e/--edit to compose the title in $VISUAL or $EDITOR instead.

Examples:
  todo add Buy milk
  todo add "Call the plumber"
  todo add -e`,
	Args: cobra.ArbitraryArgs,
	RunE: runAdd,
}

var addEdit bool

func init() {
	addCmd.Flags().BoolVarP(&addEdit, "edit", "e", false, "compose the title in an editor")
	rootCmd.AddCommand(addCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	title := strings.Join(args, " ")
	if addEdit {
		edited, err := cli.EditTitle(title)
		if err != nil {
			return err
		}
		title = edited
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.svc.Create(cmd.Context(), title)
	if err != nil {
		return err
	}

	created := tasks[0]
	return a.printTasks(cmd.OutOrStdout(), fmt.Sprintf("Created %s: %s", model.ShortID(created.ID), created.Title), tasks)
}
