package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/model"
)

var rmCmd = &cobra.Command{
	Use:     "rm <id>...",
	Aliases: []string{"delete"},
	Short:   "Delete tasks",
	Long: `Delete tasks permanently.

IDs may be abbreviated to any unique prefix. Deleting a task that does not
exist is not an error.`,
	Args:              cobra.MinimumNArgs(1),
	RunE:              runRm,
	ValidArgsFunction: completeTaskIDs,
}

func init() {
	rootCmd.AddCommand(rmCmd)
}

func runRm(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var ids []string
	for _, arg := range args {
		resolved, err := a.resolveIDs(cmd, []string{arg})
		if errors.Is(err, model.ErrNotFound) {
			a.logger.Info("no task matches id, skipping", "id", arg)
			continue
		}
		if err != nil {
			return err
		}
		ids = append(ids, resolved[0])
	}

	if len(ids) == 0 {
		tasks, err := a.svc.GetTodos(cmd.Context())
		if err != nil {
			return err
		}
		return a.printTasks(cmd.OutOrStdout(), "Nothing to delete.", tasks)
	}

	var (
		tasks []model.Task
		notes []string
	)
	for _, id := range ids {
		tasks, err = a.svc.Delete(cmd.Context(), id)
		if err != nil {
			return err
		}
		notes = append(notes, fmt.Sprintf("Deleted %s", model.ShortID(id)))
	}

	return a.printTasks(cmd.OutOrStdout(), strings.Join(notes, "\n"), tasks)
}
