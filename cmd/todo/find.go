package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var findCmd = &cobra.Command{
	Use:     "find <text>",
	Aliases: []string{"search"},
	Short:   "Search tasks by title",
	Long: `List tasks whose title contains the given text, ignoring case.

Arguments are joined with spaces. An empty search lists every task.`,
	Args: cobra.ArbitraryArgs,
	RunE: runFind,
}

func init() {
	rootCmd.AddCommand(findCmd)
}

func runFind(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.svc.Search(cmd.Context(), query)
	if err != nil {
		return err
	}

	if len(tasks) == 0 && !jsonOutput {
		a.printRecoveryNotice(cmd.OutOrStdout())
		fmt.Fprintf(cmd.OutOrStdout(), "No tasks match %q\n", strings.TrimSpace(query))
		return nil
	}
	return a.printTasks(cmd.OutOrStdout(), "", tasks)
}
