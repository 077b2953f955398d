package model

import (
	"slices"
	"time"

	"github.com/onsi/gomega/matchers/support/goraph/bipartitegraph"
	"github.com/samber/lo"
)

type greedyScheduler struct {
	config Config
}

func newGreedyScheduler(config Config) *greedyScheduler {
	return &greedyScheduler{config: config.normalized()}
}

func (scheduler *greedyScheduler) Schedule(offerings []Offering, window Window) ([]ScheduleSlot, error) {
	//** Normalize demand
	demand := newDemand(offerings)
	if demand.empty() {
		return []ScheduleSlot{}, nil
	}

	//** Determine the date window
	dates, err := availableDates(window, demand.requiredDates(), scheduler.config.SearchHorizonDays)
	if err != nil {
		return nil, err
	}

	//** Place departments one by one, backtracking across them
	state := newSearchState(scheduler.config.SearchBudget)
	if !scheduler.placeDepartments(demand, dates, state, 0) {
		if state.budget <= 0 {
			return nil, UnresolvableConflictError{
				Stage:  "scheduling",
				Detail: "search budget exhausted before a complete assignment was found",
			}
		}
		return nil, UnresolvableConflictError{
			Stage:  "scheduling",
			Detail: "unable to allocate all subjects within the given date range",
		}
	}

	schedule := state.slots
	slices.SortFunc(schedule, compareSlots)
	return schedule, nil
}

func (scheduler *greedyScheduler) placeDepartments(demand demand, dates []time.Time, state *searchState, deptIndex int) bool {
	if deptIndex == len(demand.departments) {
		return true
	}
	department := demand.departments[deptIndex]
	remaining := demand.offeringsByDept[department]
	if !feasible(remaining, dates, state, scheduler.config.MaxDeptsPerSubjectName) {
		return false
	}
	return scheduler.placeOfferings(demand, dates, state, deptIndex, remaining)
}

// placeOfferings assigns one department's remaining offerings. The next
// offering is preferred in subject-code order and dates are scanned
// chronologically, which keeps each department's dates compact; later
// candidates are only reached when the preferred one is blocked on every
// date, which is the deferral that resolves subject-name congestion.
func (scheduler *greedyScheduler) placeOfferings(demand demand, dates []time.Time, state *searchState, deptIndex int, remaining []Offering) bool {
	if state.budget <= 0 {
		return false
	}
	state.budget--

	if len(remaining) == 0 {
		return scheduler.placeDepartments(demand, dates, state, deptIndex+1)
	}

	for i, offering := range remaining {
		for _, date := range dates {
			if !state.admissible(offering, date, scheduler.config.MaxDeptsPerSubjectName) {
				continue
			}
			state.place(offering, date)
			rest := make([]Offering, 0, len(remaining)-1)
			rest = append(rest, remaining[:i]...)
			rest = append(rest, remaining[i+1:]...)
			if scheduler.placeOfferings(demand, dates, state, deptIndex, rest) {
				return true
			}
			state.unplace(offering, date)
			if state.budget <= 0 {
				return false
			}
		}
	}
	return false
}

// feasible bounds the search with a largest-matching check: every remaining
// offering of the department must still be matchable to its own admissible
// date, otherwise the branch is dead and we backtrack immediately.
func feasible(remaining []Offering, dates []time.Time, state *searchState, threshold int) bool {
	if len(remaining) == 0 {
		return true
	}

	neighbors := func(offeringAny any, dateAny any) (bool, error) {
		offering := offeringAny.(Offering)
		date := dateAny.(time.Time)
		return state.admissible(offering, date, threshold), nil
	}

	offeringsAny := lo.Map(remaining, func(offering Offering, _ int) any { return offering })
	datesAny := lo.Map(dates, func(date time.Time, _ int) any { return date })

	graph, err := bipartitegraph.NewBipartiteGraph(offeringsAny, datesAny, neighbors)
	if err != nil {
		return false
	}
	return len(graph.LargestMatching()) == len(remaining)
}

func (scheduler *greedyScheduler) Verify(schedule []ScheduleSlot, offerings []Offering, window Window) bool {
	demand := newDemand(offerings)
	if len(schedule) != demand.totalOfferings() {
		return false
	}

	start := NormalizeDate(window.Start)
	deptUsed := make(map[dateDept]bool)
	nameCount := make(map[dateName]int)
	placed := make(map[PoolKey]bool)

	for _, slot := range schedule {
		date := NormalizeDate(slot.Date)

		// Check that:
		// - the date lies inside the window and is not excluded
		// - the department sits at most one exam per date
		// - at most the configured count of departments share a subject name per date
		// - every offering is placed at most once
		if date.Before(start) ||
			(!window.End.IsZero() && date.After(NormalizeDate(window.End))) ||
			window.Excluded.Contains(date) ||
			deptUsed[dateDept{date: date, department: slot.Department}] ||
			nameCount[dateName{date: date, name: slot.SubjectName}] >= scheduler.config.MaxDeptsPerSubjectName ||
			placed[PoolKey{Department: slot.Department, SubjectCode: slot.SubjectCode}] {
			return false
		}

		deptUsed[dateDept{date: date, department: slot.Department}] = true
		nameCount[dateName{date: date, name: slot.SubjectName}]++
		placed[PoolKey{Department: slot.Department, SubjectCode: slot.SubjectCode}] = true
	}

	// Every demanded offering must appear.
	for _, department := range demand.departments {
		for _, offering := range demand.offeringsByDept[department] {
			if !placed[PoolKey{Department: offering.Department, SubjectCode: offering.SubjectCode}] {
				return false
			}
		}
	}
	return true
}

func compareSlots(a, b ScheduleSlot) int {
	if !a.Date.Equal(b.Date) {
		if a.Date.Before(b.Date) {
			return -1
		}
		return 1
	}
	if a.Department != b.Department {
		if a.Department < b.Department {
			return -1
		}
		return 1
	}
	if a.SubjectCode != b.SubjectCode {
		if a.SubjectCode < b.SubjectCode {
			return -1
		}
		return 1
	}
	return 0
}
