package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func distinctDates(schedule []ScheduleSlot) []time.Time {
	seen := make(map[time.Time]bool)
	dates := make([]time.Time, 0)
	for _, slot := range schedule {
		if !seen[slot.Date] {
			seen[slot.Date] = true
			dates = append(dates, slot.Date)
		}
	}
	return dates
}

func TestScheduleTwoDepartmentsSharedNames(t *testing.T) {
	// Arrange
	offerings := []Offering{
		{Department: "CS", SubjectCode: "CS101", SubjectName: "Math"},
		{Department: "CS", SubjectCode: "CS102", SubjectName: "Physics"},
		{Department: "IT", SubjectCode: "IT201", SubjectName: "Math"},
		{Department: "IT", SubjectCode: "IT202", SubjectName: "Physics"},
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{Start: date(2024, time.May, 1)}

	// Act
	schedule, err := scheduler.Schedule(offerings, window)

	// Assert
	require.NoError(t, err)
	assert.Len(t, schedule, 4)
	assert.Len(t, distinctDates(schedule), 2)
	assert.True(t, scheduler.Verify(schedule, offerings, window))
}

func TestScheduleThreeDepartmentsOneName(t *testing.T) {
	// Arrange
	offerings := []Offering{
		{Department: "AIDS", SubjectCode: "MA101", SubjectName: "Math"},
		{Department: "AIML", SubjectCode: "MA101", SubjectName: "Math"},
		{Department: "CSE", SubjectCode: "MA101", SubjectName: "Math"},
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{Start: date(2024, time.May, 1)}

	// Act
	schedule, err := scheduler.Schedule(offerings, window)

	// Assert
	require.NoError(t, err)
	assert.Len(t, schedule, 3)
	assert.GreaterOrEqual(t, len(distinctDates(schedule)), 2)

	perDate := make(map[time.Time]int)
	for _, slot := range schedule {
		perDate[slot.Date]++
		assert.Equal(t, "Math", slot.SubjectName)
	}
	for _, count := range perDate {
		assert.LessOrEqual(t, count, 2)
	}
	assert.True(t, scheduler.Verify(schedule, offerings, window))
}

func TestScheduleHonorsExcludedDates(t *testing.T) {
	// Arrange
	offerings := []Offering{
		{Department: "CS", SubjectCode: "CS101", SubjectName: "Math"},
		{Department: "CS", SubjectCode: "CS102", SubjectName: "Physics"},
		{Department: "CS", SubjectCode: "CS103", SubjectName: "Chemistry"},
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{
		Start:    date(2024, time.May, 1),
		Excluded: NewDateSet(date(2024, time.May, 2)),
	}

	// Act
	schedule, err := scheduler.Schedule(offerings, window)

	// Assert
	require.NoError(t, err)
	assert.Len(t, schedule, 3)
	for _, slot := range schedule {
		assert.False(t, window.Excluded.Contains(slot.Date))
	}
	assert.Equal(t, []time.Time{
		date(2024, time.May, 1),
		date(2024, time.May, 3),
		date(2024, time.May, 4),
	}, distinctDates(schedule))
	assert.True(t, scheduler.Verify(schedule, offerings, window))
}

func TestScheduleDeterministicUnderPermutation(t *testing.T) {
	// Arrange
	offerings := []Offering{
		{Department: "CS", SubjectCode: "CS101", SubjectName: "Math"},
		{Department: "CS", SubjectCode: "CS102", SubjectName: "Physics"},
		{Department: "EC", SubjectCode: "EC301", SubjectName: "Circuits"},
		{Department: "EC", SubjectCode: "EC302", SubjectName: "Math"},
		{Department: "IT", SubjectCode: "IT201", SubjectName: "Math"},
		{Department: "IT", SubjectCode: "IT202", SubjectName: "Physics"},
	}
	permuted := []Offering{
		offerings[5], offerings[2], offerings[0], offerings[4], offerings[3], offerings[1],
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{Start: date(2024, time.May, 1)}

	// Act
	first, errFirst := scheduler.Schedule(offerings, window)
	second, errSecond := scheduler.Schedule(permuted, window)

	// Assert
	require.NoError(t, errFirst)
	require.NoError(t, errSecond)
	assert.Equal(t, first, second)
}

func TestScheduleInsufficientDateRange(t *testing.T) {
	// Arrange: every date of the explicit window is excluded
	offerings := []Offering{
		{Department: "CS", SubjectCode: "CS101", SubjectName: "Math"},
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{
		Start: date(2024, time.May, 1),
		End:   date(2024, time.May, 3),
		Excluded: NewDateSet(
			date(2024, time.May, 1),
			date(2024, time.May, 2),
			date(2024, time.May, 3),
		),
	}

	// Act
	schedule, err := scheduler.Schedule(offerings, window)

	// Assert
	var rangeErr InsufficientDateRangeError
	require.ErrorAs(t, err, &rangeErr)
	assert.Equal(t, 0, rangeErr.Available)
	assert.Equal(t, 1, rangeErr.Required)
	assert.Empty(t, schedule)
}

func TestScheduleEmptyInput(t *testing.T) {
	// Arrange
	scheduler := NewScheduler(DefaultConfig())

	// Act
	schedule, err := scheduler.Schedule(nil, Window{Start: date(2024, time.May, 1)})

	// Assert
	require.NoError(t, err)
	assert.Empty(t, schedule)
}

func TestScheduleBudgetExhaustion(t *testing.T) {
	// Arrange
	config := DefaultConfig()
	config.SearchBudget = 1
	scheduler := NewScheduler(config)
	offerings := []Offering{
		{Department: "CS", SubjectCode: "CS101", SubjectName: "Math"},
		{Department: "CS", SubjectCode: "CS102", SubjectName: "Physics"},
		{Department: "IT", SubjectCode: "IT201", SubjectName: "Math"},
		{Department: "IT", SubjectCode: "IT202", SubjectName: "Physics"},
	}

	// Act
	schedule, err := scheduler.Schedule(offerings, Window{Start: date(2024, time.May, 1)})

	// Assert
	var conflictErr UnresolvableConflictError
	require.ErrorAs(t, err, &conflictErr)
	assert.Equal(t, "scheduling", conflictErr.Stage)
	assert.Empty(t, schedule)
}

func TestScheduleDuplicateRowsCollapse(t *testing.T) {
	// Arrange: same offering supplied twice, differing only in whitespace/case
	offerings := []Offering{
		{Department: "cs", SubjectCode: "cs101", SubjectName: "Math"},
		{Department: " CS ", SubjectCode: " CS101 ", SubjectName: "Math"},
		{Department: "IT", SubjectCode: "IT201", SubjectName: "Networks"},
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{Start: date(2024, time.May, 1)}

	// Act
	schedule, err := scheduler.Schedule(offerings, window)

	// Assert
	require.NoError(t, err)
	assert.Len(t, schedule, 2)
	assert.True(t, scheduler.Verify(schedule, offerings, window))
}

func TestVerifyRejectsTamperedSchedule(t *testing.T) {
	// Arrange
	offerings := []Offering{
		{Department: "CS", SubjectCode: "CS101", SubjectName: "Math"},
		{Department: "CS", SubjectCode: "CS102", SubjectName: "Physics"},
	}
	scheduler := NewScheduler(DefaultConfig())
	window := Window{Start: date(2024, time.May, 1)}
	schedule, err := scheduler.Schedule(offerings, window)
	require.NoError(t, err)

	// Act: move both exams onto the same date
	tampered := append([]ScheduleSlot(nil), schedule...)
	tampered[1].Date = tampered[0].Date

	// Assert
	assert.True(t, scheduler.Verify(schedule, offerings, window))
	assert.False(t, scheduler.Verify(tampered, offerings, window))
}
