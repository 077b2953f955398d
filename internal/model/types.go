package model

import (
	"fmt"
	"strings"
	"time"
)

// Offering is one (department, subject) pair requiring an exam date.
// SubjectCode is the catalog identity; SubjectName is the conflict key: two
// offerings with equal names clash for dates and seating adjacency even when
// their codes differ.
type Offering struct {
	Department  string
	SubjectCode string
	SubjectName string
}

// ScheduleSlot is one placed exam. A schedule contains exactly one slot per
// offering.
type ScheduleSlot struct {
	Date        time.Time
	Department  string
	SubjectCode string
	SubjectName string
}

type Student struct {
	ID           int64
	RollNumber   string
	Name         string
	Department   string
	AcademicYear string
}

// Hall is an exam room. Halls fill in Label order, ties broken by ID.
type Hall struct {
	ID       int64
	Label    string
	Capacity int
}

// SeatAssignment pins one student to a (hall, bench, position) seat.
type SeatAssignment struct {
	HallID      int64
	Bench       int
	Position    int
	StudentID   int64
	RollNumber  string
	Department  string
	SubjectCode string
	SubjectName string
}

type DateSet map[time.Time]struct{}

func NewDateSet(dates ...time.Time) DateSet {
	set := make(DateSet, len(dates))
	for _, date := range dates {
		set[NormalizeDate(date)] = struct{}{}
	}
	return set
}

func (set DateSet) Contains(date time.Time) bool {
	_, ok := set[NormalizeDate(date)]
	return ok
}

func (set DateSet) Len() int {
	return len(set)
}

// Window bounds the dates the scheduler may use. A zero End means the
// scheduler infers a compact window starting at Start.
type Window struct {
	Start    time.Time
	End      time.Time
	Excluded DateSet
}

// NormalizeDate truncates to midnight UTC so dates compare by calendar day.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseDate accepts YYYY-MM-DD (HTML date inputs) and dd/mm/yyyy.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("date is required")
	}
	for _, layout := range []string{"2006-01-02", "02/01/2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return NormalizeDate(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("date must be YYYY-MM-DD or dd/mm/yyyy: %v", s)
}
