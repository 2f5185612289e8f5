package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jacksmith/todo/internal/cli"
	"github.com/jacksmith/todo/internal/logging"
	"github.com/jacksmith/todo/internal/model"
	"github.com/jacksmith/todo/internal/ops"
	"github.com/jacksmith/todo/internal/repository"
	"github.com/jacksmith/todo/internal/storage"
)

// app is the per-command wiring from config to service.
type app struct {
	cfg       *storage.Config
	logger    *log.Logger
	backend   *storage.SlotBackend
	svc       *ops.Service
	recovered bool
}

// openApp loads .todo/config.yaml under --dir and opens the configured backend.
// The caller must Close the app.
func openApp(cmd *cobra.Command) (*app, error) {
	if !storage.Exists(rootDir) {
		return nil, fmt.Errorf("no .todo/ directory in %s (run 'todo init' first)", rootDir)
	}
	cfg, err := storage.LoadConfig(rootDir)
	if err != nil {
		return nil, err
	}

	a := &app{cfg: cfg}
	a.logger = logging.New(cmd.ErrOrStderr(), logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Prefix: "todo",
	})

	a.backend, err = storage.Open(cmd.Context(), cfg, a.logger,
		storage.WithRecoveryHook(func(storage.RecoveryEvent) { a.recovered = true }))
	if err != nil {
		return nil, err
	}
	a.logger.Debug("opened backend", "backend", cfg.Backend, "key", cfg.Key, "format", cfg.Format)

	a.svc = ops.NewService(repository.New(a.backend))
	return a, nil
}

// Close releases the backend.
func (a *app) Close() error {
	return a.backend.Close()
}

// printTasks writes tasks newest first, as a table or a JSON envelope.
func (a *app) printTasks(w io.Writer, message string, tasks []model.Task) error {
	sorted := model.SortByCreatedDesc(tasks)
	if jsonOutput {
		resp := cli.Success(message, sorted)
		resp.Recovered = a.recovered
		return resp.Write(w)
	}

	a.printRecoveryNotice(w)
	if message != "" {
		fmt.Fprintln(w, message)
	}
	cli.RenderTasks(w, sorted)
	return nil
}

// printRecoveryNotice tells the user when unreadable stored tasks were reset.
func (a *app) printRecoveryNotice(w io.Writer) {
	if a.recovered {
		fmt.Fprintln(w, cli.Red("Stored tasks were unreadable and have been reset."))
	}
}

// resolveIDs maps each id prefix to a full task id.
func (a *app) resolveIDs(cmd *cobra.Command, prefixes []string) ([]string, error) {
	tasks, err := a.svc.GetTodos(cmd.Context())
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		id, err := cli.ResolveID(p, tasks)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

func pluralize(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}
