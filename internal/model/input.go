package model

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
)

type OfferingInput struct {
	DepartmentCode string `mapstructure:"departmentCode"`
	SubjectCode    string `mapstructure:"subjectCode"`
	SubjectName    string `mapstructure:"subjectName"`
}

type StudentInput struct {
	Id             int64  `mapstructure:"id"`
	RollNumber     string `mapstructure:"rollNumber"`
	Name           string
	DepartmentCode string `mapstructure:"departmentCode"`
	AcademicYear   string `mapstructure:"academicYear"`
}

type HallInput struct {
	Id       int64 `mapstructure:"id"`
	Label    string
	Capacity int
}

type ModelInput struct {
	Offerings     []OfferingInput `mapstructure:"offerings"`
	Students      []StudentInput  `mapstructure:"students"`
	Halls         []HallInput     `mapstructure:"halls"`
	StartDate     string          `mapstructure:"startDate"`
	EndDate       string          `mapstructure:"endDate"`
	ExcludedDates []string        `mapstructure:"excludedDates"`

	// Optional per-input engine overrides; zero means "keep the configured
	// value".
	MaxDeptsPerSubjectName int `mapstructure:"maxDeptsPerSubjectName"`
	SeatsPerBench          int `mapstructure:"seatsPerBench"`
}

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}

	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}

	var input ModelInput
	if err := mapstructure.Decode(inputJson, &input); err != nil {
		return ModelInput{}, err
	}
	return input, nil
}

func (input ModelInput) GetOfferings() []Offering {
	offerings := make([]Offering, 0, len(input.Offerings))
	for _, row := range input.Offerings {
		offerings = append(offerings, Offering{
			Department:  row.DepartmentCode,
			SubjectCode: row.SubjectCode,
			SubjectName: row.SubjectName,
		})
	}
	return offerings
}

// GetSubjectNames maps subject codes to their conflict names, first name
// wins.
func (input ModelInput) GetSubjectNames() map[string]string {
	names := make(map[string]string, len(input.Offerings))
	for _, row := range input.Offerings {
		code := strings.ToUpper(strings.TrimSpace(row.SubjectCode))
		name := strings.TrimSpace(row.SubjectName)
		if code == "" || name == "" {
			continue
		}
		if _, ok := names[code]; !ok {
			names[code] = name
		}
	}
	return names
}

func (input ModelInput) GetStudents() []Student {
	students := make([]Student, 0, len(input.Students))
	for _, row := range input.Students {
		students = append(students, Student{
			ID:           row.Id,
			RollNumber:   strings.TrimSpace(row.RollNumber),
			Name:         strings.TrimSpace(row.Name),
			Department:   strings.ToUpper(strings.TrimSpace(row.DepartmentCode)),
			AcademicYear: strings.TrimSpace(row.AcademicYear),
		})
	}
	return students
}

func (input ModelInput) GetHalls() ([]Hall, error) {
	halls := make([]Hall, 0, len(input.Halls))
	for _, row := range input.Halls {
		if row.Capacity <= 0 {
			return nil, fmt.Errorf("hall %v must have a positive capacity: %v", row.Label, row.Capacity)
		}
		halls = append(halls, Hall{
			ID:       row.Id,
			Label:    strings.TrimSpace(row.Label),
			Capacity: row.Capacity,
		})
	}
	return halls, nil
}

// OverrideConfig applies the input's optional engine overrides on top of the
// given configuration.
func (input ModelInput) OverrideConfig(config Config) Config {
	if input.MaxDeptsPerSubjectName > 0 {
		config.MaxDeptsPerSubjectName = input.MaxDeptsPerSubjectName
	}
	if input.SeatsPerBench > 0 {
		config.SeatsPerBench = input.SeatsPerBench
	}
	return config
}

func (input ModelInput) GetWindow() (Window, error) {
	start, err := ParseDate(input.StartDate)
	if err != nil {
		return Window{}, fmt.Errorf("startDate: %w", err)
	}

	window := Window{Start: start, Excluded: NewDateSet()}
	if strings.TrimSpace(input.EndDate) != "" {
		end, err := ParseDate(input.EndDate)
		if err != nil {
			return Window{}, fmt.Errorf("endDate: %w", err)
		}
		window.End = end
	}

	// Malformed excluded dates are skipped rather than rejected.
	for _, raw := range input.ExcludedDates {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		date, err := ParseDate(raw)
		if err != nil {
			continue
		}
		window.Excluded[date] = struct{}{}
	}
	return window, nil
}
