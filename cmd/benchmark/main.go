package main

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"time"

	"examplan/internal/model"

	"github.com/samber/lo"
)

type EngineType int

const (
	scheduling EngineType = iota
	allocation
)

type ResultType int

const (
	solved ResultType = iota
	unsolvable
	rejected
)

var (
	engineTypes = map[EngineType]string{
		scheduling: "scheduling",
		allocation: "allocation",
	}
	resultTypes = map[ResultType]string{
		solved:     "solved",
		unsolvable: "unsolvable",
		rejected:   "rejected",
	}
)

type WorkloadMetadata struct {
	Name              string
	Departments       int
	SubjectsPerDept   int
	SharedNames       int
	StudentsPerDept   int
	Halls             int
	AvailableDates    int
}

type BenchmarkResult struct {
	Engine   EngineType
	Workload WorkloadMetadata
	Duration int64
	Result   ResultType
}

func main() {
	workloads := getWorkloads()
	results := make([]BenchmarkResult, 0, len(workloads)*2)

	engineConfig := model.DefaultConfig()
	scheduler := model.NewScheduler(engineConfig)
	allocator := model.NewAllocator(engineConfig)

	for _, workload := range workloads {
		fmt.Printf("Benchmarking workload \"%v\" with %v departments, %v subjects each and %v students each\n", workload.Name, workload.Departments, workload.SubjectsPerDept, workload.StudentsPerDept)

		duration, result := measureScheduling(scheduler, workload)
		results = append(results, BenchmarkResult{
			Engine:   scheduling,
			Workload: workload,
			Duration: duration,
			Result:   result,
		})

		duration, result = measureAllocation(allocator, workload)
		results = append(results, BenchmarkResult{
			Engine:   allocation,
			Workload: workload,
			Duration: duration,
			Result:   result,
		})
	}

	toCsv(results)
}

func getWorkloads() []WorkloadMetadata {
	workloads := []WorkloadMetadata{
		{Departments: 2, SubjectsPerDept: 3, SharedNames: 1, StudentsPerDept: 30, Halls: 2},
		{Departments: 3, SubjectsPerDept: 4, SharedNames: 2, StudentsPerDept: 45, Halls: 3},
		{Departments: 4, SubjectsPerDept: 5, SharedNames: 3, StudentsPerDept: 60, Halls: 6},
		{Departments: 6, SubjectsPerDept: 6, SharedNames: 4, StudentsPerDept: 90, Halls: 12},
		{Departments: 8, SubjectsPerDept: 8, SharedNames: 6, StudentsPerDept: 120, Halls: 22},
		{Departments: 3, SubjectsPerDept: 6, SharedNames: 2, StudentsPerDept: 45, Halls: 3, AvailableDates: 6},
		{Departments: 4, SubjectsPerDept: 8, SharedNames: 4, StudentsPerDept: 60, Halls: 6, AvailableDates: 8},
	}

	return lo.Map(workloads, func(workload WorkloadMetadata, i int) WorkloadMetadata {
		workload.Name = fmt.Sprintf("workload_%02d", i+1)
		return workload
	})
}

func getOfferings(workload WorkloadMetadata) []model.Offering {
	offerings := make([]model.Offering, 0, workload.Departments*workload.SubjectsPerDept)
	for d := 0; d < workload.Departments; d++ {
		department := fmt.Sprintf("DEPT%02d", d+1)
		for s := 0; s < workload.SubjectsPerDept; s++ {
			// The first SharedNames subjects of every department carry
			// the same cross-department names.
			name := fmt.Sprintf("Subject %v-%v", department, s+1)
			if s < workload.SharedNames {
				name = fmt.Sprintf("Common Subject %v", s+1)
			}
			offerings = append(offerings, model.Offering{
				Department:  department,
				SubjectCode: fmt.Sprintf("%v-S%02d", department, s+1),
				SubjectName: name,
			})
		}
	}
	return offerings
}

func getWindow(workload WorkloadMetadata) model.Window {
	start := model.NormalizeDate(time.Date(2026, time.June, 1, 0, 0, 0, 0, time.UTC))
	window := model.Window{Start: start}
	if workload.AvailableDates > 0 {
		window.End = start.AddDate(0, 0, workload.AvailableDates-1)
	}
	return window
}

func getPool(workload WorkloadMetadata) *model.StudentPool {
	byKey := make(map[model.PoolKey][]model.Student)
	names := make(map[string]string)
	for d := 0; d < workload.Departments; d++ {
		department := fmt.Sprintf("DEPT%02d", d+1)
		code := fmt.Sprintf("%v-S01", department)
		names[code] = fmt.Sprintf("Common Subject 1 (%v)", department)

		students := make([]model.Student, 0, workload.StudentsPerDept)
		for i := 0; i < workload.StudentsPerDept; i++ {
			students = append(students, model.Student{
				ID:         int64(d+1)*100000 + int64(i+1),
				RollNumber: fmt.Sprintf("%v-%04d", department, i+1),
				Name:       fmt.Sprintf("Student %v-%v", department, i+1),
				Department: department,
			})
		}
		byKey[model.PoolKey{Department: department, SubjectCode: code}] = students
	}
	return model.NewStudentPool(byKey, names)
}

func getHalls(workload WorkloadMetadata) []model.Hall {
	halls := make([]model.Hall, 0, workload.Halls)
	for h := 0; h < workload.Halls; h++ {
		halls = append(halls, model.Hall{
			ID:       int64(h + 1),
			Label:    fmt.Sprintf("H%03d", h+1),
			Capacity: 45,
		})
	}
	return halls
}

func measureScheduling(scheduler model.Scheduler, workload WorkloadMetadata) (duration int64, result ResultType) {
	offerings := getOfferings(workload)
	window := getWindow(workload)

	start := time.Now()
	_, err := scheduler.Schedule(offerings, window)
	duration = time.Since(start).Milliseconds()

	result = classify(err)
	return duration, result
}

func measureAllocation(allocator model.Allocator, workload WorkloadMetadata) (duration int64, result ResultType) {
	pool := getPool(workload)
	halls := getHalls(workload)

	start := time.Now()
	_, err := allocator.Allocate(pool, halls)
	duration = time.Since(start).Milliseconds()

	result = classify(err)
	return duration, result
}

func classify(err error) ResultType {
	switch err.(type) {
	case nil:
		return solved
	case model.UnresolvableConflictError:
		return unsolvable
	default:
		return rejected
	}
}

func toCsv(results []BenchmarkResult) {
	file, err := os.Create("benchmark_results.csv")
	if err != nil {
		log.Panicf("cannot create CSV file: %v", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{"Engine", "Workload", "Departments", "Subjects/Dept", "Shared Names", "Students/Dept", "Halls", "Available Dates", "Duration(ms)", "Result"}
	if err := writer.Write(header); err != nil {
		log.Panicf("cannot write CSV header: %v", err)
	}

	for _, result := range results {
		record := []string{
			engineTypes[result.Engine],
			result.Workload.Name,
			fmt.Sprintf("%d", result.Workload.Departments),
			fmt.Sprintf("%d", result.Workload.SubjectsPerDept),
			fmt.Sprintf("%d", result.Workload.SharedNames),
			fmt.Sprintf("%d", result.Workload.StudentsPerDept),
			fmt.Sprintf("%d", result.Workload.Halls),
			fmt.Sprintf("%d", result.Workload.AvailableDates),
			fmt.Sprintf("%d", result.Duration),
			resultTypes[result.Result],
		}
		if err := writer.Write(record); err != nil {
			log.Panicf("cannot write CSV record: %v", err)
		}
	}
}
