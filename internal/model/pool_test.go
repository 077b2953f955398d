package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolPopsInQueueOrder(t *testing.T) {
	// Arrange
	key := PoolKey{Department: "CS", SubjectCode: "CS101"}
	pool := NewStudentPool(map[PoolKey][]Student{key: rollCall("CS", 3)}, nil)

	// Act + Assert
	first, ok := pool.Pop(key)
	require.True(t, ok)
	assert.Equal(t, "CS-001", first.RollNumber)

	pool.PushFront(key, first)
	again, ok := pool.Pop(key)
	require.True(t, ok)
	assert.Equal(t, "CS-001", again.RollNumber)

	second, ok := pool.Pop(key)
	require.True(t, ok)
	assert.Equal(t, "CS-002", second.RollNumber)
}

func TestPoolDepartmentsDominantFirst(t *testing.T) {
	// Arrange
	pool := NewStudentPool(map[PoolKey][]Student{
		{Department: "CS", SubjectCode: "CS101"}: rollCall("CS", 2),
		{Department: "IT", SubjectCode: "IT201"}: rollCall("IT", 5),
		{Department: "EC", SubjectCode: "EC301"}: rollCall("EC", 2),
	}, nil)

	// Act
	departments := pool.Departments()

	// Assert: largest remainder first, name ascending on ties
	assert.Equal(t, []string{"IT", "CS", "EC"}, departments)
}

func TestPoolCloneIsolation(t *testing.T) {
	// Arrange
	key := PoolKey{Department: "CS", SubjectCode: "CS101"}
	pool := NewStudentPool(map[PoolKey][]Student{key: rollCall("CS", 2)}, nil)

	// Act
	clone := pool.Clone()
	_, ok := clone.Pop(key)

	// Assert
	require.True(t, ok)
	assert.Equal(t, 2, pool.TotalRemaining())
	assert.Equal(t, 1, clone.TotalRemaining())
}

func TestPoolSubjectNameFallsBackToCode(t *testing.T) {
	// Arrange
	pool := NewStudentPool(nil, map[string]string{"CS101": "Math"})

	// Act + Assert
	assert.Equal(t, "Math", pool.SubjectName("CS101"))
	assert.Equal(t, "ZZ999", pool.SubjectName("ZZ999"))
}

func TestPoolKeysForRespectsDepartmentOrder(t *testing.T) {
	// Arrange
	pool := NewStudentPool(map[PoolKey][]Student{
		{Department: "CS", SubjectCode: "CS102"}: rollCall("CS", 1),
		{Department: "CS", SubjectCode: "CS101"}: rollCall("CS", 1),
		{Department: "IT", SubjectCode: "IT201"}: rollCall("IT", 1),
	}, nil)

	// Act
	keys := pool.KeysFor([]string{"IT", "CS"})

	// Assert
	assert.Equal(t, []PoolKey{
		{Department: "IT", SubjectCode: "IT201"},
		{Department: "CS", SubjectCode: "CS101"},
		{Department: "CS", SubjectCode: "CS102"},
	}, keys)
}
