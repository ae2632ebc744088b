// Package locator discovers exercise files below a root directory.
package locator

import (
	"io/fs"
	"path/filepath"
	"slices"
	"strings"

	"github.com/perfgo/lingsgrade/model"
)

// Policy describes which files count as exercises.
type Policy struct {
	// Source file extension including the dot (e.g. ".rs")
	Extension string
	// Directory segment holding build output; subtrees named like this are skipped
	BuildDir string
	// Substring of a path marking a managed project
	Marker string
	// File names graded under the managed shape
	AllowList []string
	// File name prefixes excluded under the standalone shape
	ReservedPrefixes []string
}

// DefaultPolicy returns the policy for the Rust exercise set.
func DefaultPolicy() Policy {
	return Policy{
		Extension:        ".rs",
		BuildDir:         "target",
		Marker:           "learning-lm-rs",
		AllowList:        []string{"model.rs", "operators.rs"},
		ReservedPrefixes: []string{"test_", "helper_"},
	}
}

// Shape classifies a path. It is meant to be called once per run with the
// root (or single file) and the result passed down to everything else.
func (p Policy) Shape(path string) model.ProjectShape {
	if p.Marker != "" && strings.Contains(path, p.Marker) {
		return model.ShapeManaged
	}
	return model.ShapeStandalone
}

// Includes reports whether a file name is an exercise under the given shape.
func (p Policy) Includes(name string, shape model.ProjectShape) bool {
	if !strings.HasSuffix(name, p.Extension) {
		return false
	}
	if shape == model.ShapeManaged {
		return slices.Contains(p.AllowList, name)
	}
	for _, prefix := range p.ReservedPrefixes {
		if prefix != "" && strings.HasPrefix(name, prefix) {
			return false
		}
	}
	return true
}

// Find walks root and returns the exercise files in traversal order.
// Entries that cannot be read are skipped; the walk never fails.
func (p Policy) Find(root string, shape model.ProjectShape) []string {
	var files []string

	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d == nil {
			// unreadable entry, keep walking the rest of the tree
			return nil
		}

		if p.inBuildDir(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() {
			return nil
		}

		if p.Includes(d.Name(), shape) {
			files = append(files, path)
		}
		return nil
	})

	return files
}

func (p Policy) inBuildDir(path string) bool {
	if p.BuildDir == "" {
		return false
	}
	for _, segment := range strings.Split(filepath.ToSlash(filepath.Clean(path)), "/") {
		if segment == p.BuildDir {
			return true
		}
	}
	return false
}
