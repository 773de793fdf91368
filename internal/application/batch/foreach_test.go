package batch_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/trygghms/hms-api/internal/application/batch"
)

func ident(s string) string { return s }

func TestForEach_AllSucceed(t *testing.T) {
	var seen []string
	report := batch.ForEach(context.Background(), []string{"a", "b", "c"}, ident, func(s string) error {
		seen = append(seen, s)
		return nil
	})

	assert.True(t, report.Ok())
	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

// One failing unit must not stop the remaining units, and must still be
// counted in Total.
func TestForEach_FailureDoesNotAbort(t *testing.T) {
	boom := errors.New("boom")
	var seen []string
	report := batch.ForEach(context.Background(), []string{"a", "b", "c"}, ident, func(s string) error {
		seen = append(seen, s)
		if s == "b" {
			return boom
		}
		return nil
	})

	assert.Equal(t, 3, report.Total, "failed unit still counts as processed")
	assert.Equal(t, 1, report.Failed)
	assert.Equal(t, []string{"a", "b", "c"}, seen, "units after the failure must run")
	assert.Len(t, report.Errors, 1)
	assert.Equal(t, "b", report.Errors[0].Key)
	assert.ErrorIs(t, report.Errors[0].Err, boom)
	assert.False(t, report.Ok())
}

// A panicking unit degrades to a recorded error.
func TestForEach_PanicBecomesError(t *testing.T) {
	report := batch.ForEach(context.Background(), []string{"a", "b"}, ident, func(s string) error {
		if s == "a" {
			panic("bad unit")
		}
		return nil
	})

	assert.Equal(t, 2, report.Total)
	assert.Equal(t, 1, report.Failed)
	assert.Contains(t, report.Errors[0].Err.Error(), "bad unit")
}

func TestForEach_ContextCancelStopsBetweenUnits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var seen int
	report := batch.ForEach(ctx, []string{"a", "b", "c"}, ident, func(s string) error {
		seen++
		cancel() // cancel after the first unit
		return nil
	})

	assert.Equal(t, 1, seen, "no further units after cancellation")
	assert.Equal(t, 1, report.Total)
	assert.True(t, report.Aborted)
	assert.False(t, report.Ok())
}

func TestForEach_Empty(t *testing.T) {
	report := batch.ForEach(context.Background(), nil, ident, func(s string) error { return nil })
	assert.True(t, report.Ok())
	assert.Equal(t, 0, report.Total)
}
