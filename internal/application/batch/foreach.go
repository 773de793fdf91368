// Package batch provides the partial-failure policy shared by the background
// jobs: apply a function to every unit of work, record failures, never let one
// unit abort the rest.
package batch

import (
	"context"
	"fmt"
)

// UnitError pairs a failed unit's key with its error.
type UnitError struct {
	Key string
	Err error
}

// Report summarizes a ForEach run.
type Report struct {
	Total   int
	Failed  int
	Errors  []UnitError
	Aborted bool // context cancelled before all units ran
}

// Ok reports whether every unit succeeded and the run completed.
func (r Report) Ok() bool {
	return r.Failed == 0 && !r.Aborted
}

// ForEach applies fn to every item. A failing item, including one that
// panics, is recorded and the loop continues with the next. Cancellation is
// honored between units: once ctx is done no further units run and the report
// is marked aborted.
func ForEach[T any](ctx context.Context, items []T, key func(T) string, fn func(T) error) Report {
	report := Report{}
	for _, item := range items {
		if ctx.Err() != nil {
			report.Aborted = true
			break
		}
		report.Total++
		if err := runUnit(item, fn); err != nil {
			report.Failed++
			report.Errors = append(report.Errors, UnitError{Key: key(item), Err: err})
		}
	}
	return report
}

// runUnit isolates panics so a misbehaving unit degrades to an error.
func runUnit[T any](item T, fn func(T) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(item)
}
