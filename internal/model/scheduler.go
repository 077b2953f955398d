package model

// Scheduler assigns every offering a calendar date so that no department sits
// two exams the same day and at most Config.MaxDeptsPerSubjectName
// departments share a subject name on one date.
type Scheduler interface {
	Schedule(offerings []Offering, window Window) ([]ScheduleSlot, error)

	Verify(schedule []ScheduleSlot, offerings []Offering, window Window) bool
}

func NewScheduler(config Config) Scheduler {
	return newGreedyScheduler(config)
}
