// Package report persists grading results and loads them back.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/perfgo/lingsgrade/model"
)

// DefaultPath is where a grading run writes its report, relative to the
// working directory.
const DefaultPath = "rustlings_result.json"

// Save writes the result as indented JSON, replacing any previous report.
func Save(path string, result *model.GradeResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal grade result: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report %s: %w", path, err)
	}
	return nil
}

// Load reads a report written by Save.
func Load(path string) (*model.GradeResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}

	var result model.GradeResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	if result.Exercises == nil {
		result.Exercises = []model.ExerciseResult{}
	}

	return &result, nil
}
