package model

import "time"

// ExerciseResult is the persisted outcome of a single graded exercise.
type ExerciseResult struct {
	// File name of the exercise (e.g. "vecs1.rs")
	Name string `json:"name"`
	// Whether the exercise compiled and its tests passed
	Result bool `json:"result"`
}

// Statistics summarizes a sequence of ExerciseResult values.
// Counters only move through Record, so Total always equals
// Succeeds + Failures.
type Statistics struct {
	// Number of graded exercises (spelling kept for report compatibility)
	Total int `json:"total_exercations"`
	// Number of passed exercises
	Succeeds int `json:"total_succeeds"`
	// Number of failed exercises
	Failures int `json:"total_failures"`
	// Sum of whole seconds spent per exercise
	TotalTime uint64 `json:"total_time"`
}

// GradeResult is the root report artifact written at the end of a run.
type GradeResult struct {
	Exercises  []ExerciseResult `json:"exercises"`
	Statistics Statistics       `json:"statistics"`
}

// Outcome is what grading one exercise produces before it is folded
// into a GradeResult.
type Outcome struct {
	Name    string
	Passed  bool
	Elapsed time.Duration
}

// Seconds returns the elapsed time truncated to whole seconds.
func (o Outcome) Seconds() uint64 {
	return uint64(o.Elapsed / time.Second)
}

// Record folds one outcome into the statistics.
func (s *Statistics) Record(o Outcome) {
	s.Total++
	if o.Passed {
		s.Succeeds++
	} else {
		s.Failures++
	}
	s.TotalTime += o.Seconds()
}

// PassRate returns the percentage of passed exercises, 0 for an empty run.
func (s Statistics) PassRate() float64 {
	if s.Total == 0 {
		return 0
	}
	return float64(s.Succeeds) / float64(s.Total) * 100
}

// NewGradeResult returns an empty result with a non-nil exercise list so
// the report always serializes "exercises" as an array.
func NewGradeResult() *GradeResult {
	return &GradeResult{Exercises: []ExerciseResult{}}
}

// Add appends the outcome and updates the statistics in one step.
func (g *GradeResult) Add(o Outcome) {
	g.Exercises = append(g.Exercises, ExerciseResult{Name: o.Name, Result: o.Passed})
	g.Statistics.Record(o)
}

// Failed returns the names of the exercises that did not pass, in report order.
func (g *GradeResult) Failed() []string {
	var names []string
	for _, e := range g.Exercises {
		if !e.Result {
			names = append(names, e.Name)
		}
	}
	return names
}
