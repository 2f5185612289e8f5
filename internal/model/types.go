// Package model defines the core data structures for todo.
package model

import (
	"sort"
	"strings"
	"time"
)

// Task is a single to-do item.
// Field names are part of the persisted format and must not change.
type Task struct {
	ID        string `json:"id" yaml:"id" toml:"id"`
	Title     string `json:"title" yaml:"title" toml:"title"`
	Completed bool   `json:"completed" yaml:"completed" toml:"completed"`
	CreatedAt int64  `json:"createdAt" yaml:"createdAt" toml:"createdAt"` // ms since epoch
}

// Created returns the creation time of the task.
func (t *Task) Created() time.Time {
	return time.UnixMilli(t.CreatedAt)
}

// MatchesTitle reports whether query is a case-insensitive substring of the
// task title. An empty query matches every task.
func (t *Task) MatchesTitle(query string) bool {
	return strings.Contains(strings.ToLower(t.Title), strings.ToLower(query))
}

// SortByCreatedDesc returns a copy of tasks ordered newest first.
// Tasks with equal timestamps keep their relative order.
func SortByCreatedDesc(tasks []Task) []Task {
	sorted := make([]Task, len(tasks))
	copy(sorted, tasks)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].CreatedAt > sorted[j].CreatedAt
	})
	return sorted
}

// IndexOf returns the index of the task with the given ID, or -1.
func IndexOf(tasks []Task, id string) int {
	for i := range tasks {
		if tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// FormatDate renders a creation timestamp for display, e.g. "October 19, 2026".
func FormatDate(ms int64) string {
	return time.UnixMilli(ms).Local().Format("January 02, 2006")
}
