package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/export"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export tasks as text, CSV, or PDF",
	Long: `Write every task, newest first, in a shareable format.

This is a one-way export for viewing and sharing. It cannot be re-imported.

Examples:
  todo export
  todo export --format csv -o tasks.csv
  todo export --format pdf -o tasks.pdf`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

var (
	exportFormat string
	exportOutput string
	exportTitle  string
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", export.FormatText,
		"output format ("+strings.Join(export.Formats(), ", ")+")")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
	exportCmd.Flags().StringVar(&exportTitle, "title", "", "document title")
	exportCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return export.Formats(), cobra.ShellCompDirectiveNoFileComp
	})
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	if strings.EqualFold(exportFormat, export.FormatPDF) && exportOutput == "" && cli.IsTerminal(cmd.OutOrStdout()) {
		return fmt.Errorf("refusing to write PDF to a terminal; use -o <file>")
	}

	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.Close()

	tasks, err := a.svc.GetTodos(cmd.Context())
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", exportOutput, err)
		}
		defer f.Close()
		w = f
	}

	if err := export.Write(w, exportFormat, tasks, export.Options{Title: exportTitle}); err != nil {
		return err
	}
	if exportOutput != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Exported %s to %s\n", pluralize(len(tasks), "task"), exportOutput)
	}
	return nil
}
