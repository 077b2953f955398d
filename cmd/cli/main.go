package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"go.uber.org/zap"

	"examplan/internal/config"
	"examplan/internal/logger"
	"examplan/internal/model"
)

var validModes = []string{"schedule", "allocate", "plan"}

type scheduleRow struct {
	Date        string `json:"date"`
	Department  string `json:"department"`
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`
}

type seatRow struct {
	HallId      int64  `json:"hallId"`
	Bench       int    `json:"bench"`
	Position    int    `json:"position"`
	StudentId   int64  `json:"studentId"`
	RollNumber  string `json:"rollNumber"`
	Department  string `json:"department"`
	SubjectCode string `json:"subjectCode"`
	SubjectName string `json:"subjectName"`
}

type output struct {
	Schedule []scheduleRow        `json:"schedule,omitempty"`
	Seating  map[string][]seatRow `json:"seating,omitempty"`
}

func main() {
	// Define arguments
	modePtr := flag.String("mode", "plan", `What to run. Allowed values are:
- "schedule" (assign every offering an exam date),
- "allocate" (seat the students for one exam day) and
- "plan" (schedule, then seat every exam day), where "plan" is the default`)
	filePathPtr := flag.String("file", "", "Path to the input file")
	outFilePathPtr := flag.String("out", "", "Path to the file where the output will be written; if empty, it'll be written into the Standard Output")
	configFilePtr := flag.String("config", "", "Path to an env file with configuration overrides; defaults to \".env\"")
	flag.Parse()
	mode := strings.ToLower(*modePtr)
	filePath := *filePathPtr
	outFile := *outFilePathPtr

	var envFiles []string
	if *configFilePtr != "" {
		envFiles = append(envFiles, *configFilePtr)
	}
	cfg, err := config.Load(envFiles...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot load configuration: %v\n", err)
		os.Exit(1)
	}
	log, err := logger.New(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cannot initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Validate arguments
	if !slices.Contains(validModes, mode) {
		log.Fatal("invalid mode", zap.String("mode", mode))
	} else if filePath == "" {
		log.Fatal("an input file must be specified")
	}

	// Extract input
	input, err := model.InputFromJson(filePath)
	if err != nil {
		log.Fatal("cannot parse input file", zap.Error(err))
	}

	// Initialize engines, letting the input file override its own tunables
	engineConfig := input.OverrideConfig(cfg.Engine.ModelConfig())
	scheduler := model.NewScheduler(engineConfig)
	allocator := model.NewAllocator(engineConfig)

	result := output{}

	var schedule []model.ScheduleSlot
	if mode == "schedule" || mode == "plan" {
		schedule = runSchedule(log, scheduler, input)
		result.Schedule = scheduleRows(schedule)
	}

	switch mode {
	case "allocate":
		// One exam day: every offering is sat by its department's full roster.
		pool := poolForOfferings(input.GetOfferings(), input.GetStudents(), input.GetSubjectNames())
		result.Seating = map[string][]seatRow{
			"all": runAllocate(log, allocator, pool, input),
		}
	case "plan":
		result.Seating = make(map[string][]seatRow)
		for _, day := range scheduleDates(schedule) {
			pool := poolForDate(schedule, day, input.GetStudents(), input.GetSubjectNames())
			result.Seating[day.Format("2006-01-02")] = runAllocate(log, allocator, pool, input)
		}
	}

	// Marshal output into json
	resultJson, err := json.Marshal(result)
	if err != nil {
		log.Fatal("an error occurred while building output json", zap.Error(err))
	}

	// Verify outfile is empty, if so then write the results to the Standard Output
	if outFile == "" {
		fmt.Println(string(resultJson))
	} else if err := os.WriteFile(outFile, resultJson, 0666); err != nil {
		log.Fatal("an error occurred while writing to the output file", zap.Error(err))
	}
}

func runSchedule(log *zap.Logger, scheduler model.Scheduler, input model.ModelInput) []model.ScheduleSlot {
	window, err := input.GetWindow()
	if err != nil {
		log.Fatal("invalid date window", zap.Error(err))
	}
	offerings := input.GetOfferings()

	schedule, err := scheduler.Schedule(offerings, window)
	if err != nil {
		log.Fatal("scheduling failed", zap.Error(err))
	}
	if !scheduler.Verify(schedule, offerings, window) {
		log.Fatal("generated schedule failed verification")
	}
	log.Info("schedule generated",
		zap.Int("slots", len(schedule)),
		zap.Int("days", len(scheduleDates(schedule))),
	)
	return schedule
}

func runAllocate(log *zap.Logger, allocator model.Allocator, pool *model.StudentPool, input model.ModelInput) []seatRow {
	halls, err := input.GetHalls()
	if err != nil {
		log.Fatal("invalid halls", zap.Error(err))
	}

	assignments, err := allocator.Allocate(pool, halls)
	if err != nil {
		log.Fatal("seat allocation failed", zap.Error(err))
	}
	if !allocator.Verify(assignments, pool, halls) {
		log.Fatal("generated seating failed verification")
	}
	log.Info("seating generated", zap.Int("seats", len(assignments)))

	rows := make([]seatRow, 0, len(assignments))
	for _, assignment := range assignments {
		rows = append(rows, seatRow{
			HallId:      assignment.HallID,
			Bench:       assignment.Bench,
			Position:    assignment.Position,
			StudentId:   assignment.StudentID,
			RollNumber:  assignment.RollNumber,
			Department:  assignment.Department,
			SubjectCode: assignment.SubjectCode,
			SubjectName: assignment.SubjectName,
		})
	}
	return rows
}

func scheduleRows(schedule []model.ScheduleSlot) []scheduleRow {
	rows := make([]scheduleRow, 0, len(schedule))
	for _, slot := range schedule {
		rows = append(rows, scheduleRow{
			Date:        slot.Date.Format("2006-01-02"),
			Department:  slot.Department,
			SubjectCode: slot.SubjectCode,
			SubjectName: slot.SubjectName,
		})
	}
	return rows
}

func scheduleDates(schedule []model.ScheduleSlot) []time.Time {
	dates := make([]time.Time, 0)
	seen := make(map[time.Time]bool)
	for _, slot := range schedule {
		if !seen[slot.Date] {
			seen[slot.Date] = true
			dates = append(dates, slot.Date)
		}
	}
	return dates
}

func studentsByDept(students []model.Student) map[string][]model.Student {
	byDept := make(map[string][]model.Student)
	for _, student := range students {
		byDept[student.Department] = append(byDept[student.Department], student)
	}
	return byDept
}

func poolForOfferings(offerings []model.Offering, students []model.Student, names map[string]string) *model.StudentPool {
	byDept := studentsByDept(students)
	// A department sits one exam per day, so its roster enters the pool once;
	// the lowest subject code wins when the input carries several offerings
	// for one department.
	codeByDept := make(map[string]string)
	for _, offering := range offerings {
		department := strings.ToUpper(strings.TrimSpace(offering.Department))
		code := strings.ToUpper(strings.TrimSpace(offering.SubjectCode))
		if department == "" || code == "" {
			continue
		}
		if existing, ok := codeByDept[department]; !ok || code < existing {
			codeByDept[department] = code
		}
	}
	byKey := make(map[model.PoolKey][]model.Student)
	for department, code := range codeByDept {
		byKey[model.PoolKey{Department: department, SubjectCode: code}] = byDept[department]
	}
	return model.NewStudentPool(byKey, names)
}

func poolForDate(schedule []model.ScheduleSlot, day time.Time, students []model.Student, names map[string]string) *model.StudentPool {
	byDept := studentsByDept(students)
	byKey := make(map[model.PoolKey][]model.Student)
	for _, slot := range schedule {
		if !slot.Date.Equal(day) {
			continue
		}
		byKey[model.PoolKey{Department: slot.Department, SubjectCode: slot.SubjectCode}] = byDept[slot.Department]
	}
	return model.NewStudentPool(byKey, names)
}
