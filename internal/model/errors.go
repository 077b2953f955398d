package model

import "fmt"

// InsufficientDateRangeError reports a window with fewer available dates than
// the demand requires. No partial schedule accompanies it.
type InsufficientDateRangeError struct {
	Available int
	Required  int
}

func (err InsufficientDateRangeError) Error() string {
	return fmt.Sprintf("insufficient dates: %v available, but at least %v needed", err.Available, err.Required)
}

// UnresolvableConflictError reports an exhausted search: either the scheduler
// ran out of candidate assignments (or budget), or the allocator could not
// seat everyone without breaking the adjacency rules.
type UnresolvableConflictError struct {
	Stage  string
	Detail string
}

func (err UnresolvableConflictError) Error() string {
	return fmt.Sprintf("%v: %v", err.Stage, err.Detail)
}

// InsufficientCapacityError reports more students than seats across all
// halls. The allocator fails fast with this before placing anyone.
type InsufficientCapacityError struct {
	Students int
	Seats    int
}

func (err InsufficientCapacityError) Deficit() int {
	return err.Students - err.Seats
}

func (err InsufficientCapacityError) Error() string {
	return fmt.Sprintf("not enough seats across exam halls: %v more needed", err.Deficit())
}

// SingleDepartmentRemainderError reports that only one department still had
// unplaced students while seats remained; returned only under
// RejectRemainder.
type SingleDepartmentRemainderError struct {
	Department string
	Remaining  int
}

func (err SingleDepartmentRemainderError) Error() string {
	return fmt.Sprintf("only department %v has students left (%v unplaced)", err.Department, err.Remaining)
}
