package model

// Allocator seats every pooled student, saturating halls in label order while
// keeping each room mixed across departments and same-subject-name students
// apart on a bench.
type Allocator interface {
	Allocate(pool *StudentPool, halls []Hall) ([]SeatAssignment, error)

	Verify(assignments []SeatAssignment, pool *StudentPool, halls []Hall) bool
}

func NewAllocator(config Config) Allocator {
	return &pairedAllocator{config: config.normalized()}
}
