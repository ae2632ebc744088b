package grader

import (
	"errors"
	"fmt"
)

// Stage names the step of grading an exercise.
type Stage string

const (
	StageSetup   Stage = "setup"
	StageCompile Stage = "compile"
	StageRun     Stage = "run"
)

// ErrNoFileName is returned when an exercise path has no usable file name.
var ErrNoFileName = errors.New("cannot determine exercise file name")

// HardError means an exercise could not be graded at all, as opposed to an
// exercise that was graded and failed. It aborts the whole run.
type HardError struct {
	Exercise string
	Stage    Stage
	Err      error
}

func (e *HardError) Error() string {
	return fmt.Sprintf("grading %s failed during %s: %v", e.Exercise, e.Stage, e.Err)
}

func (e *HardError) Unwrap() error {
	return e.Err
}

func hardError(exercise string, stage Stage, err error) error {
	return &HardError{Exercise: exercise, Stage: stage, Err: err}
}
