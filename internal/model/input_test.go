package model

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateFormats(t *testing.T) {
	// Arrange
	scenarios := map[string]time.Time{
		"2024-05-01": date(2024, time.May, 1),
		"01/05/2024": date(2024, time.May, 1),
		" 2024-05-01 ": date(2024, time.May, 1),
	}

	for raw, expected := range scenarios {
		// Act
		parsed, err := ParseDate(raw)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, expected, parsed)
	}

	_, err := ParseDate("05-01-2024")
	assert.Error(t, err)
	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestInputFromJson(t *testing.T) {
	// Arrange
	payload := `{
		"offerings": [
			{"departmentCode": "CS", "subjectCode": "CS101", "subjectName": "Math"},
			{"departmentCode": "IT", "subjectCode": "IT201", "subjectName": "Math"}
		],
		"students": [
			{"id": 1, "rollNumber": "CS-001", "name": "A", "departmentCode": "cs", "academicYear": "2024"}
		],
		"halls": [
			{"id": 1, "label": "H1", "capacity": 45}
		],
		"startDate": "2024-05-01",
		"excludedDates": ["2024-05-02", "", "bogus"]
	}`
	file := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(file, []byte(payload), 0666))

	// Act
	input, err := InputFromJson(file)

	// Assert
	require.NoError(t, err)
	assert.Len(t, input.GetOfferings(), 2)
	assert.Equal(t, map[string]string{"CS101": "Math", "IT201": "Math"}, input.GetSubjectNames())

	students := input.GetStudents()
	require.Len(t, students, 1)
	assert.Equal(t, "CS", students[0].Department)

	halls, err := input.GetHalls()
	require.NoError(t, err)
	assert.Equal(t, []Hall{{ID: 1, Label: "H1", Capacity: 45}}, halls)

	window, err := input.GetWindow()
	require.NoError(t, err)
	assert.Equal(t, date(2024, time.May, 1), window.Start)
	assert.True(t, window.End.IsZero())
	assert.Equal(t, 1, window.Excluded.Len())
	assert.True(t, window.Excluded.Contains(date(2024, time.May, 2)))
}

func TestGetHallsRejectsNonPositiveCapacity(t *testing.T) {
	// Arrange
	input := ModelInput{Halls: []HallInput{{Id: 1, Label: "H1", Capacity: 0}}}

	// Act
	halls, err := input.GetHalls()

	// Assert
	assert.Error(t, err)
	assert.Nil(t, halls)
}

func TestGetWindowRequiresStartDate(t *testing.T) {
	// Arrange
	input := ModelInput{}

	// Act
	_, err := input.GetWindow()

	// Assert
	assert.Error(t, err)
}

func TestOverrideConfig(t *testing.T) {
	// Arrange
	input := ModelInput{MaxDeptsPerSubjectName: 3}

	// Act
	config := input.OverrideConfig(DefaultConfig())

	// Assert
	assert.Equal(t, 3, config.MaxDeptsPerSubjectName)
	assert.Equal(t, DefaultConfig().SeatsPerBench, config.SeatsPerBench)
}
