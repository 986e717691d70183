// Package state holds the tagged result each user action owns.
package state

import "time"

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusFailure Status = "failure"
)

// Result is the outcome of one action. Value is set only on success and
// Error only on failure, so no combination of flags can disagree.
type Result[T any] struct {
	Status    Status    `json:"status"`
	Value     *T        `json:"value,omitempty"`
	Error     string    `json:"error,omitempty"`
	UpdatedAt time.Time `json:"updated_at"`
}

func Idle[T any]() Result[T] {
	return Result[T]{Status: StatusIdle, UpdatedAt: time.Now()}
}

func Loading[T any]() Result[T] {
	return Result[T]{Status: StatusLoading, UpdatedAt: time.Now()}
}

func Succeeded[T any](v T) Result[T] {
	return Result[T]{Status: StatusSuccess, Value: &v, UpdatedAt: time.Now()}
}

func Failed[T any](msg string) Result[T] {
	return Result[T]{Status: StatusFailure, Error: msg, UpdatedAt: time.Now()}
}

func (r Result[T]) IsLoading() bool { return r.Status == StatusLoading }

// ErrorMessage returns nil unless the action failed.
func (r Result[T]) ErrorMessage() *string {
	if r.Status != StatusFailure {
		return nil
	}
	msg := r.Error
	return &msg
}
