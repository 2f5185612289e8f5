package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/model"
)

var toggleCmd = &cobra.Command{
	Use:     "toggle <id>...",
	Aliases: []string{"done"},
	Short:   "Flip tasks between pending and completed",
	Long: `Mark pending tasks completed and completed tasks pending.

IDs may be abbreviated to any unique prefix, as shown by 'todo list'.

Examples:
  todo toggle 1a2b3c4d
  todo toggle 1a2b 9f8e`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runToggle,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(toggleCmd)
}

func runToggle(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	ids, err := a.resolveIDs(cmd, args)
	if err != nil {
		return err
	}

	var (
		tasks []model.Task
		notes []string
	)
	for _, id := range ids {
		updated, found, err := a.svc.Toggle(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !found {
			return &model.NotFoundError{ID: id}
		}
		tasks = updated

		i := model.IndexOf(updated, id)
		verb := "Reopened"
		if updated[i].Completed {
			verb = "Completed"
		}
		notes = append(notes, fmt.Sprintf("%s %s: %s", verb, model.ShortID(id), updated[i].Title))
	}

	return a.printTasks(cmd.OutOrStdout(), strings.Join(notes, "\n"), tasks)
}
