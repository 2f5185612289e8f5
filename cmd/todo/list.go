package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List tasks",
	Long: `List tasks, newest first.

Use --pending or --done to show only tasks in that state.`,
	Args: cobra.NoArgs,
	RunE: runList,
}

var (
	listPending bool
	listDone    bool
)

func init() {
	listCmd.Flags().BoolVar(&listPending, "pending", false, "show only pending tasks")
	listCmd.Flags().BoolVar(&listDone, "done", false, "show only completed tasks")
	listCmd.MarkFlagsMutuallyExclusive("pending", "done")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	var filter ops.TaskFilter
	switch {
	case listPending:
		filter.State = model.TaskStatePending
	case listDone:
		filter.State = model.TaskStateCompleted
	}

	tasks, err := a.svc.List(cmd.Context(), filter)
	if err != nil {
		return err
	}
	if err := a.printTasks(cmd.OutOrStdout(), "", tasks); err != nil {
		return err
	}
	if jsonOutput {
		return nil
	}

	st, err := a.svc.Stats(cmd.Context())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), cli.Gray(fmt.Sprintf("%s, %d completed, %d pending",
		pluralize(st.Total, "task"), st.Completed, st.Pending)))
	return nil
}
