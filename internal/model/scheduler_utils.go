package model

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

// demand is the normalized view of the offerings: deduplicated, upper-cased
// keys, grouped per department in a fixed order so the search is independent
// of input row order.
type demand struct {
	departments     []string
	offeringsByDept map[string][]Offering
}

func newDemand(offerings []Offering) demand {
	seen := make(map[PoolKey]bool)
	names := make(map[string]string)
	byDept := make(map[string][]Offering)

	for _, offering := range offerings {
		department := strings.ToUpper(strings.TrimSpace(offering.Department))
		code := strings.ToUpper(strings.TrimSpace(offering.SubjectCode))
		name := strings.TrimSpace(offering.SubjectName)
		if department == "" || code == "" {
			continue
		}
		if seen[PoolKey{Department: department, SubjectCode: code}] {
			continue
		}
		seen[PoolKey{Department: department, SubjectCode: code}] = true
		if name == "" {
			name = code
		}
		// First name wins so every slot of a code carries one conflict key.
		if existing, ok := names[code]; ok {
			name = existing
		} else {
			names[code] = name
		}
		byDept[department] = append(byDept[department], Offering{
			Department:  department,
			SubjectCode: code,
			SubjectName: name,
		})
	}

	departments := lo.Keys(byDept)
	sort.Strings(departments)
	for _, department := range departments {
		deptOfferings := byDept[department]
		sort.Slice(deptOfferings, func(i, j int) bool {
			return deptOfferings[i].SubjectCode < deptOfferings[j].SubjectCode
		})
	}

	return demand{departments: departments, offeringsByDept: byDept}
}

func (d demand) empty() bool {
	return len(d.departments) == 0
}

func (d demand) totalOfferings() int {
	return lo.SumBy(d.departments, func(department string) int {
		return len(d.offeringsByDept[department])
	})
}

// requiredDates is the minimum count of available dates: the largest
// department needs one date per offering, and every department sharing a
// subject name needs its own slot under that name.
func (d demand) requiredDates() int {
	maxPerDept := 0
	nameDepts := make(map[string]map[string]bool)
	for _, department := range d.departments {
		offerings := d.offeringsByDept[department]
		if len(offerings) > maxPerDept {
			maxPerDept = len(offerings)
		}
		for _, offering := range offerings {
			if nameDepts[offering.SubjectName] == nil {
				nameDepts[offering.SubjectName] = make(map[string]bool)
			}
			nameDepts[offering.SubjectName][department] = true
		}
	}

	maxNameNeed := 0
	for _, depts := range nameDepts {
		if len(depts) > maxNameNeed {
			maxNameNeed = len(depts)
		}
	}

	if maxPerDept > maxNameNeed {
		return maxPerDept
	}
	return maxNameNeed
}

// availableDates walks the calendar skipping excluded dates. A zero window
// end infers a compact window holding exactly the required count; an
// explicit end fixes the window and only gets checked for sufficiency.
func availableDates(window Window, required int, horizonDays int) ([]time.Time, error) {
	start := NormalizeDate(window.Start)
	dates := make([]time.Time, 0, required)

	if window.End.IsZero() {
		day := start
		for searched := 0; len(dates) < required && searched < horizonDays; searched++ {
			if !window.Excluded.Contains(day) {
				dates = append(dates, day)
			}
			day = day.AddDate(0, 0, 1)
		}
		if len(dates) < required {
			return nil, InsufficientDateRangeError{Available: len(dates), Required: required}
		}
		return dates, nil
	}

	end := NormalizeDate(window.End)
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		if !window.Excluded.Contains(day) {
			dates = append(dates, day)
		}
	}
	if len(dates) < required {
		return nil, InsufficientDateRangeError{Available: len(dates), Required: required}
	}
	return dates, nil
}

type dateDept struct {
	date       time.Time
	department string
}

type dateName struct {
	date time.Time
	name string
}

// searchState is the mutable partial schedule of the placement search.
type searchState struct {
	slots     []ScheduleSlot
	deptUsed  map[dateDept]bool
	nameCount map[dateName]int
	budget    int
}

func newSearchState(budget int) *searchState {
	return &searchState{
		slots:     make([]ScheduleSlot, 0),
		deptUsed:  make(map[dateDept]bool),
		nameCount: make(map[dateName]int),
		budget:    budget,
	}
}

func (state *searchState) admissible(offering Offering, date time.Time, threshold int) bool {
	if state.deptUsed[dateDept{date: date, department: offering.Department}] {
		return false
	}
	return state.nameCount[dateName{date: date, name: offering.SubjectName}] < threshold
}

func (state *searchState) place(offering Offering, date time.Time) {
	state.slots = append(state.slots, ScheduleSlot{
		Date:        date,
		Department:  offering.Department,
		SubjectCode: offering.SubjectCode,
		SubjectName: offering.SubjectName,
	})
	state.deptUsed[dateDept{date: date, department: offering.Department}] = true
	state.nameCount[dateName{date: date, name: offering.SubjectName}]++
}

func (state *searchState) unplace(offering Offering, date time.Time) {
	state.slots = state.slots[:len(state.slots)-1]
	delete(state.deptUsed, dateDept{date: date, department: offering.Department})
	state.nameCount[dateName{date: date, name: offering.SubjectName}]--
}
