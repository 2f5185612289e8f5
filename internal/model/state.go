package model

// TaskState is the display status of a task.
type TaskState string

const (
	TaskStatePending   TaskState = "pending"
	TaskStateCompleted TaskState = "completed"
)

// ComputeTaskState returns the state for a task.
func ComputeTaskState(t *Task) TaskState {
	if t.Completed {
		return TaskStateCompleted
	}
	return TaskStatePending
}

// Toggle flips the completion flag.
func (t *Task) Toggle() {
	t.Completed = !t.Completed
}

// FilterByState returns the tasks in the given state, preserving order.
func FilterByState(tasks []Task, state TaskState) []Task {
	out := make([]Task, 0, len(tasks))
	for i := range tasks {
		if ComputeTaskState(&tasks[i]) == state {
			out = append(out, tasks[i])
		}
	}
	return out
}
