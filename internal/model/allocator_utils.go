package model

import (
	"slices"

	"github.com/samber/lo"
)

type seatOccupant struct {
	department string
	name       string
}

// hallState tracks one hall's occupied seats during allocation. Seats are
// keyed (bench, position), both 1-based.
type hallState struct {
	hall    Hall
	benches int
	seats   map[[2]int]seatOccupant
}

func (allocator *pairedAllocator) hallStates(halls []Hall) []*hallState {
	sorted := append([]Hall(nil), halls...)
	slices.SortFunc(sorted, func(a, b Hall) int {
		if a.Label != b.Label {
			if a.Label < b.Label {
				return -1
			}
			return 1
		}
		if a.ID != b.ID {
			if a.ID < b.ID {
				return -1
			}
			return 1
		}
		return 0
	})

	return lo.Map(sorted, func(hall Hall, _ int) *hallState {
		return &hallState{
			hall:    hall,
			benches: allocator.benchesFor(hall.Capacity),
			seats:   make(map[[2]int]seatOccupant),
		}
	})
}

// benchesFor keeps the conventional bench layout for default-capacity halls
// and derives the bench count for any other size.
func (allocator *pairedAllocator) benchesFor(capacity int) int {
	if capacity == allocator.config.DefaultHallCapacity {
		return allocator.config.BenchesPerHall
	}
	benches := (capacity + allocator.config.SeatsPerBench - 1) / allocator.config.SeatsPerBench
	if benches < 1 {
		benches = 1
	}
	return benches
}

func (state *hallState) placed() int {
	return len(state.seats)
}

func (state *hallState) full() bool {
	return len(state.seats) >= state.hall.Capacity
}

// findSeat scans bench by bench for the first free position whose occupied
// neighbors carry a different subject name.
func (state *hallState) findSeat(name string, seatsPerBench int) (int, int, bool) {
	for bench := 1; bench <= state.benches; bench++ {
		for position := 1; position <= seatsPerBench; position++ {
			if (bench-1)*seatsPerBench+position > state.hall.Capacity {
				break
			}
			if _, taken := state.seats[[2]int{bench, position}]; taken {
				continue
			}
			if state.sameNameAdjacent(name, bench, position, seatsPerBench) {
				continue
			}
			return bench, position, true
		}
	}
	return 0, 0, false
}

// Positions on a bench neighbor only their immediate sides, so the middle of
// a 3-seat bench touches both ends while the ends touch only the middle.
func (state *hallState) sameNameAdjacent(name string, bench, position, seatsPerBench int) bool {
	for _, neighbor := range []int{position - 1, position + 1} {
		if neighbor < 1 || neighbor > seatsPerBench {
			continue
		}
		if occupant, ok := state.seats[[2]int{bench, neighbor}]; ok && occupant.name == name {
			return true
		}
	}
	return false
}

func (state *hallState) occupy(bench, position int, department, name string) {
	state.seats[[2]int{bench, position}] = seatOccupant{department: department, name: name}
}

func (allocator *pairedAllocator) Verify(assignments []SeatAssignment, pool *StudentPool, halls []Hall) bool {
	if len(assignments) != pool.TotalRemaining() {
		return false
	}

	states := allocator.hallStates(halls)
	stateByID := make(map[int64]*hallState, len(states))
	for _, state := range states {
		stateByID[state.hall.ID] = state
	}

	studentSeen := make(map[int64]bool)
	for _, assignment := range assignments {
		state, ok := stateByID[assignment.HallID]
		if !ok {
			return false
		}

		// Check that:
		// - the seat exists within the hall's bench layout and capacity
		// - no seat holds two students and no student holds two seats
		// - no occupied neighbor on the bench shares the subject name
		seat := [2]int{assignment.Bench, assignment.Position}
		if assignment.Bench < 1 || assignment.Bench > state.benches ||
			assignment.Position < 1 || assignment.Position > allocator.config.SeatsPerBench ||
			(assignment.Bench-1)*allocator.config.SeatsPerBench+assignment.Position > state.hall.Capacity {
			return false
		}
		if _, taken := state.seats[seat]; taken {
			return false
		}
		if studentSeen[assignment.StudentID] {
			return false
		}
		if state.sameNameAdjacent(assignment.SubjectName, assignment.Bench, assignment.Position, allocator.config.SeatsPerBench) {
			return false
		}

		state.seats[seat] = seatOccupant{department: assignment.Department, name: assignment.SubjectName}
		studentSeen[assignment.StudentID] = true
	}

	// Single-department halls are exempt when the pool itself holds a lone
	// department.
	if len(pool.Departments()) < 2 {
		return true
	}
	return allocator.mixingSatisfied(states)
}

// mixingSatisfied checks that every hall with two or more students mixes at
// least two departments. Single-department halls are tolerated only as a
// trailing remainder run under PlaceRemainder, all for one department.
func (allocator *pairedAllocator) mixingSatisfied(states []*hallState) bool {
	remainderDept := ""
	for _, state := range states {
		departments := make(map[string]bool)
		for _, occupant := range state.seats {
			departments[occupant.department] = true
		}
		if remainderDept != "" && len(departments) > 0 {
			if len(departments) != 1 || !departments[remainderDept] {
				return false
			}
			continue
		}
		if state.placed() < 2 || len(departments) >= 2 {
			continue
		}
		if allocator.config.SingleDeptPolicy != PlaceRemainder {
			return false
		}
		for department := range departments {
			remainderDept = department
		}
	}
	return true
}
