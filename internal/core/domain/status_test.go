package domain

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func resultWith(succeeded, failed int) *BatchResult {
	result := &BatchResult{TotalCount: succeeded + failed}
	for i := 0; i < succeeded; i++ {
		result.Successes = append(result.Successes, Success{Filename: "f", SizeBytes: 1})
	}
	for i := 0; i < failed; i++ {
		result.Failures = append(result.Failures, Failure{Locator: "x", Cause: errors.New("boom")})
	}
	return result
}

func TestRunReport_StatusLine(t *testing.T) {
	tests := []struct {
		name     string
		report   RunReport
		expected string
	}{
		{
			name:     "No locators",
			report:   RunReport{Status: StatusNoLocators},
			expected: "No downloadable items found.",
		},
		{
			name:     "All failed",
			report:   RunReport{Status: StatusAllFailed, Result: resultWith(0, 4)},
			expected: "Failed to download any files.",
		},
		{
			name:     "Partial",
			report:   RunReport{Status: StatusPartial, Label: "Item", Result: resultWith(3, 2)},
			expected: "✓ Downloaded Item.zip (3 of 5 files, 2 failed)",
		},
		{
			name:     "Complete",
			report:   RunReport{Status: StatusComplete, Label: "Item", Result: resultWith(5, 0)},
			expected: "✓ Downloaded Item.zip (5 files)",
		},
		{
			name: "Archive failed",
			report: RunReport{
				Status: StatusArchiveFailed,
				Result: resultWith(2, 0),
				Err:    &ArchiveError{Successes: 2, Cause: errors.New("disk full")},
			},
			expected: "Downloaded 2 files but failed to package them: disk full",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.report.StatusLine())
		})
	}
}

func TestRunReport_StatusLine_Cancelled(t *testing.T) {
	result := resultWith(2, 1)
	result.Failures = append(result.Failures, Failure{
		Locator: "y",
		Cause:   &FetchError{Kind: FetchErrorCancelled, Cause: context.Canceled},
	})
	result.TotalCount = 4

	report := RunReport{Status: StatusCancelled, Result: result}

	assert.Equal(t, "Cancelled after 3/4 files.", report.StatusLine())
}

func TestRunStatus_IsFailure(t *testing.T) {
	assert.False(t, StatusNoLocators.IsFailure())
	assert.False(t, StatusPartial.IsFailure())
	assert.False(t, StatusComplete.IsFailure())
	assert.True(t, StatusAllFailed.IsFailure())
	assert.True(t, StatusArchiveFailed.IsFailure())
	assert.True(t, StatusCancelled.IsFailure())
}

func TestRunStatus_IsValid(t *testing.T) {
	assert.True(t, StatusComplete.IsValid())
	assert.False(t, RunStatus("done").IsValid())
	assert.Equal(t, unknownDescription, RunStatus("done").Description())
}

func TestProgressText(t *testing.T) {
	assert.Equal(t, "Downloaded 3/10 files", ProgressText(3, 10, false))
	assert.Equal(t, "Downloaded 3/10 files (rate limited)", ProgressText(3, 10, true))
}
