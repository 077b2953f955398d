package model

import (
	"sort"

	"github.com/samber/lo"
)

// PoolKey identifies one queue of students sitting the same subject for the
// same department.
type PoolKey struct {
	Department  string
	SubjectCode string
}

// StudentPool owns FIFO queues of unplaced students per (department,
// subject). The allocator works on its own clone, so a pool can be shared
// across independent calls.
type StudentPool struct {
	queues map[PoolKey][]Student
	names  map[string]string
}

func NewStudentPool(studentsByKey map[PoolKey][]Student, subjectNames map[string]string) *StudentPool {
	pool := &StudentPool{
		queues: make(map[PoolKey][]Student, len(studentsByKey)),
		names:  make(map[string]string, len(subjectNames)),
	}
	for key, students := range studentsByKey {
		if len(students) == 0 {
			continue
		}
		pool.queues[key] = append([]Student(nil), students...)
	}
	for code, name := range subjectNames {
		pool.names[code] = name
	}
	return pool
}

func (pool *StudentPool) Clone() *StudentPool {
	clone := &StudentPool{
		queues: make(map[PoolKey][]Student, len(pool.queues)),
		names:  make(map[string]string, len(pool.names)),
	}
	for key, students := range pool.queues {
		clone.queues[key] = append([]Student(nil), students...)
	}
	for code, name := range pool.names {
		clone.names[code] = name
	}
	return clone
}

// SubjectName resolves the conflict key of a subject code. Codes without a
// mapped name conflict only with themselves.
func (pool *StudentPool) SubjectName(code string) string {
	if name, ok := pool.names[code]; ok && name != "" {
		return name
	}
	return code
}

func (pool *StudentPool) TotalRemaining() int {
	return lo.SumBy(lo.Values(pool.queues), func(students []Student) int { return len(students) })
}

func (pool *StudentPool) DeptRemaining(department string) int {
	total := 0
	for key, students := range pool.queues {
		if key.Department == department {
			total += len(students)
		}
	}
	return total
}

// Departments returns every department with students left, largest remainder
// first, so the dominant department is always at the head.
func (pool *StudentPool) Departments() []string {
	totals := make(map[string]int)
	for key, students := range pool.queues {
		if len(students) > 0 {
			totals[key.Department] += len(students)
		}
	}
	departments := lo.Keys(totals)
	sort.Slice(departments, func(i, j int) bool {
		if totals[departments[i]] != totals[departments[j]] {
			return totals[departments[i]] > totals[departments[j]]
		}
		return departments[i] < departments[j]
	})
	return departments
}

// KeysFor returns the non-empty queues of the given departments, respecting
// the departments' order, subject code ascending within a department.
func (pool *StudentPool) KeysFor(departments []string) []PoolKey {
	keys := make([]PoolKey, 0, len(pool.queues))
	for _, department := range departments {
		deptKeys := make([]PoolKey, 0)
		for key, students := range pool.queues {
			if key.Department == department && len(students) > 0 {
				deptKeys = append(deptKeys, key)
			}
		}
		sort.Slice(deptKeys, func(i, j int) bool { return deptKeys[i].SubjectCode < deptKeys[j].SubjectCode })
		keys = append(keys, deptKeys...)
	}
	return keys
}

func (pool *StudentPool) Pop(key PoolKey) (Student, bool) {
	queue := pool.queues[key]
	if len(queue) == 0 {
		return Student{}, false
	}
	student := queue[0]
	pool.queues[key] = queue[1:]
	return student, true
}

func (pool *StudentPool) PushFront(key PoolKey, student Student) {
	pool.queues[key] = append([]Student{student}, pool.queues[key]...)
}
