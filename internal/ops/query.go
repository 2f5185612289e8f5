package ops

import (
	"context"

	"github.com/jacksmith/todo/internal/model"
)

// TaskFilter selects tasks for listing. A zero State matches every task.
type TaskFilter struct {
	State model.TaskState
}

// Stats counts tasks by state.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
}

// ComputeStats counts the tasks in each state.
func ComputeStats(tasks []model.Task) Stats {
	st := Stats{Total: len(tasks)}
	for i := range tasks {
		if model.ComputeTaskState(&tasks[i]) == model.TaskStateCompleted {
			st.Completed++
		}
	}
	st.Pending = st.Total - st.Completed
	return st
}

// List returns tasks matching filter, newest first.
func (s *Service) List(ctx context.Context, filter TaskFilter) ([]model.Task, error) {
	tasks, err := s.GetTodos(ctx)
	if err != nil {
		return nil, err
	}
	if filter.State == "" {
		return tasks, nil
	}
	return model.FilterByState(tasks, filter.State), nil
}

// Stats returns counts for the whole collection.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	tasks, err := s.store.GetAll(ctx)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(tasks), nil
}
