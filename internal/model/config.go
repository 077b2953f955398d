package model

// SingleDeptPolicy decides what happens when seats remain but only one
// department still has unplaced students.
type SingleDeptPolicy int

const (
	// PlaceRemainder keeps seating the last department. Halls that end up
	// single-department this way are the terminal-shortage exception to the
	// two-departments-per-hall rule.
	PlaceRemainder SingleDeptPolicy = iota
	// RejectRemainder aborts the whole allocation with
	// SingleDepartmentRemainderError instead.
	RejectRemainder
)

// Config carries the tunable constants of both engines.
type Config struct {
	MaxDeptsPerSubjectName int // departments allowed to sit the same subject name on one date
	SeatsPerBench          int
	DefaultHallCapacity    int // halls with exactly this capacity keep the conventional bench layout
	BenchesPerHall         int // bench count for halls at DefaultHallCapacity
	SearchBudget           int // scheduler search nodes before giving up
	SearchHorizonDays      int // furthest an inferred window may reach past the start date
	SingleDeptPolicy       SingleDeptPolicy
}

// DefaultConfig matches the conventional 45-seat, 15-bench hall layout with
// 3 students per bench.
func DefaultConfig() Config {
	return Config{
		MaxDeptsPerSubjectName: 2,
		SeatsPerBench:          3,
		DefaultHallCapacity:    45,
		BenchesPerHall:         15,
		SearchBudget:           500000,
		SearchHorizonDays:      365,
		SingleDeptPolicy:       PlaceRemainder,
	}
}

func (config Config) normalized() Config {
	defaults := DefaultConfig()
	if config.MaxDeptsPerSubjectName <= 0 {
		config.MaxDeptsPerSubjectName = defaults.MaxDeptsPerSubjectName
	}
	if config.SeatsPerBench <= 0 {
		config.SeatsPerBench = defaults.SeatsPerBench
	}
	if config.DefaultHallCapacity <= 0 {
		config.DefaultHallCapacity = defaults.DefaultHallCapacity
	}
	if config.BenchesPerHall <= 0 {
		config.BenchesPerHall = defaults.BenchesPerHall
	}
	if config.SearchBudget <= 0 {
		config.SearchBudget = defaults.SearchBudget
	}
	if config.SearchHorizonDays <= 0 {
		config.SearchHorizonDays = defaults.SearchHorizonDays
	}
	return config
}
