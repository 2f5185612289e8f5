package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check stored task data",
	Long: `Read the task slot without changing it and report problems:

- corrupted data that cannot be decoded
- duplicate task ids
- empty titles

Normal commands silently reset corrupted data. Run check first to see what
would be lost, and --reset to clear it explicitly.

Exits non-zero when issues remain.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkReset bool

func init() {
	checkCmd.Flags().BoolVar(&checkReset, "reset", false, "clear the slot if it is corrupted")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	result, err := ops.RunCheck(cmd.Context(), a.backend, checkReset)
	if err != nil {
		return err
	}

	ok := result.Healthy() || result.Reset
	summary := fmt.Sprintf("found %s", pluralize(len(result.Report.Issues), "issue"))

	if jsonOutput {
		resp := cli.Success(summary, result)
		if !ok {
			resp.Code = cli.ResponseFailed
		}
		if err := resp.Write(cmd.OutOrStdout()); err != nil {
			return err
		}
		if !ok {
			return errReported
		}
		return nil
	}

	printReport(cmd, result)
	if !ok {
		return errors.New(summary)
	}
	return nil
}

func printReport(cmd *cobra.Command, result *ops.CheckResult) {
	out := cmd.OutOrStdout()
	r := result.Report

	if !r.Present {
		fmt.Fprintf(out, "Slot %q is empty.\n", r.Key)
	} else {
		fmt.Fprintf(out, "Slot %q (%s, %d bytes): %s\n", r.Key, r.Format, r.Bytes, pluralize(r.Tasks, "task"))
	}

	if result.Healthy() {
		fmt.Fprintln(out, cli.Green("No issues found."))
		return
	}

	fmt.Fprintf(out, "Found %s:\n", pluralize(len(r.Issues), "issue"))
	for _, issue := range r.Issues {
		fmt.Fprintf(out, "  %s %s\n", formatIssueType(issue.Type), issue)
	}
	if result.Reset {
		fmt.Fprintln(out, cli.Green("Corrupted slot cleared."))
	}
}

func formatIssueType(t storage.IssueType) string {
	switch t {
	case storage.IssueCorrupted:
		return cli.Red("[corrupted]")
	case storage.IssueDuplicateID:
		return cli.Red("[duplicate]")
	default:
		return cli.Gray(fmt.Sprintf("[%s]", t))
	}
}
