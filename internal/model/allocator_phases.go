package model

import (
	"fmt"
	"slices"
	"sort"

	"github.com/samber/lo"
)

type pairedAllocator struct {
	config Config
}

func (allocator *pairedAllocator) Allocate(pool *StudentPool, halls []Hall) ([]SeatAssignment, error) {
	working := pool.Clone()
	if working.TotalRemaining() == 0 {
		return []SeatAssignment{}, nil
	}

	//** Fail fast on capacity before placing anyone
	totalSeats := lo.SumBy(halls, func(hall Hall) int { return hall.Capacity })
	if working.TotalRemaining() > totalSeats {
		return nil, InsufficientCapacityError{Students: working.TotalRemaining(), Seats: totalSeats}
	}

	states := allocator.hallStates(halls)
	assignments := make([]SeatAssignment, 0, working.TotalRemaining())
	multiDept := len(working.Departments()) >= 2

	//** Phase 1: paired saturation, dominant department plus rotating minor
	minorRotation := 0
	for _, state := range states {
		if working.TotalRemaining() == 0 {
			break
		}
		departments := working.Departments()
		if len(departments) < 2 {
			break
		}
		dominant := departments[0]
		minors := departments[1:]
		minor := minors[minorRotation%len(minors)]
		minorRotation++

		allocator.fillHall(state, working, []string{dominant, minor}, true, &assignments)
	}

	//** Phase 2: overflow across every hall with free seats, all departments at once
	for _, state := range states {
		if working.TotalRemaining() == 0 {
			break
		}
		departments := working.Departments()
		if len(departments) < 2 {
			break
		}
		if state.full() {
			continue
		}
		allocator.fillHall(state, working, departments, false, &assignments)
	}

	//** Terminal shortage: fewer than two departments still holding students
	if working.TotalRemaining() > 0 {
		if departments := working.Departments(); len(departments) == 1 {
			department := departments[0]
			if allocator.config.SingleDeptPolicy == RejectRemainder {
				return nil, SingleDepartmentRemainderError{
					Department: department,
					Remaining:  working.DeptRemaining(department),
				}
			}
			for _, state := range states {
				if working.TotalRemaining() == 0 {
					break
				}
				if state.full() {
					continue
				}
				allocator.fillHall(state, working, []string{department}, false, &assignments)
			}
		}
	}

	if remaining := working.TotalRemaining(); remaining > 0 {
		return nil, UnresolvableConflictError{
			Stage:  "allocation",
			Detail: fmt.Sprintf("%v students could not be seated without same-subject adjacency", remaining),
		}
	}

	// Never hand back a plan that segregates a hall: if the greedy fill left
	// a hall holding one department while others had students, fail instead.
	if multiDept && !allocator.mixingSatisfied(states) {
		return nil, UnresolvableConflictError{
			Stage:  "allocation",
			Detail: "a hall could not be filled with students from two departments",
		}
	}
	return assignments, nil
}

// fillHall pours students from the allowed departments into one hall until it
// is full or no admissible student remains. When the allowed set stalls with
// capacity left, one more department with remaining students is admitted
// before giving up on the hall.
func (allocator *pairedAllocator) fillHall(state *hallState, working *StudentPool, allowed []string, alternate bool, assignments *[]SeatAssignment) {
	allowed = append([]string(nil), allowed...)

	for !state.full() && working.TotalRemaining() > 0 {
		keys := working.KeysFor(allocator.allowedOrder(allowed, state.placed(), alternate))

		placed := false
		for _, key := range keys {
			name := working.SubjectName(key.SubjectCode)
			student, ok := working.Pop(key)
			if !ok {
				continue
			}
			bench, position, found := state.findSeat(name, allocator.config.SeatsPerBench)
			if !found {
				working.PushFront(key, student)
				continue
			}
			state.occupy(bench, position, key.Department, name)
			*assignments = append(*assignments, SeatAssignment{
				HallID:      state.hall.ID,
				Bench:       bench,
				Position:    position,
				StudentID:   student.ID,
				RollNumber:  student.RollNumber,
				Department:  key.Department,
				SubjectCode: key.SubjectCode,
				SubjectName: name,
			})
			placed = true
			break
		}

		if placed {
			continue
		}

		// Exhaustion: admit another department rather than leaving seats.
		admitted := false
		for _, department := range working.Departments() {
			if !slices.Contains(allowed, department) {
				allowed = append(allowed, department)
				admitted = true
				break
			}
		}
		if !admitted {
			break
		}
	}
}

// allowedOrder keeps the A-B-A-B alternation of a paired hall: the parity of
// the placed count picks which department's queues go first.
func (allocator *pairedAllocator) allowedOrder(allowed []string, placed int, alternate bool) []string {
	order := append([]string(nil), allowed...)
	sort.Strings(order)
	if !alternate || len(order) < 2 {
		return order
	}
	next := order[placed%2]
	return append([]string{next}, lo.Without(order, next)...)
}
