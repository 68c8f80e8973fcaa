package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWeekOf(t *testing.T) {
	tests := []struct {
		day  int
		week int
	}{
		{1, 1},
		{7, 1},
		{8, 2},
		{14, 2},
		{15, 3},
		{30, 5},
		{90, 13},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.week, WeekOf(tt.day), "day %d", tt.day)
	}
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		day   int
		month int
	}{
		{1, 1},
		{30, 1},
		{31, 2},
		{60, 2},
		{61, 3},
		{90, 3},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.month, MonthOf(tt.day), "day %d", tt.day)
	}
}

func TestFirstDayRoundTrip(t *testing.T) {
	for week := 1; week <= 13; week++ {
		first := FirstDayOfWeek(week)
		assert.Equal(t, week, WeekOf(first))
		assert.Equal(t, week, WeekOf(first+6))
		assert.Equal(t, week+1, WeekOf(first+7))
	}
	for month := 1; month <= 3; month++ {
		first := FirstDayOfMonth(month)
		assert.Equal(t, month, MonthOf(first))
		assert.Equal(t, month, MonthOf(first+29))
	}
}

func TestTaskDerivedBuckets(t *testing.T) {
	task := Task{Day: 45}
	assert.Equal(t, 7, task.Week())
	assert.Equal(t, 2, task.Month())
}

func TestAttempted(t *testing.T) {
	assert.False(t, (&Task{Status: StatusPending}).Attempted())
	assert.True(t, (&Task{Status: StatusCompleted}).Attempted())
	assert.True(t, (&Task{Status: StatusSkipped}).Attempted())
}

func TestValidateStatusTransition(t *testing.T) {
	require.NoError(t, ValidateStatusTransition(StatusPending, StatusCompleted))
	require.NoError(t, ValidateStatusTransition(StatusPending, StatusSkipped))

	invalid := [][2]string{
		{StatusCompleted, StatusPending},
		{StatusCompleted, StatusSkipped},
		{StatusSkipped, StatusCompleted},
		{StatusPending, StatusPending},
	}
	for _, pair := range invalid {
		assert.Error(t, ValidateStatusTransition(pair[0], pair[1]), "%s -> %s", pair[0], pair[1])
	}
}
