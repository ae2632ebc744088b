// Package config loads the optional YAML configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/goccy/go-yaml"
	"github.com/perfgo/lingsgrade/grader"
	"github.com/perfgo/lingsgrade/locator"
	"github.com/perfgo/lingsgrade/toolchain"
)

// DefaultFile is read from the working directory when no file is named.
const DefaultFile = ".lingsgrade.yaml"

// File mirrors the YAML configuration. Zero values leave the built-in
// defaults untouched.
type File struct {
	Extension        string   `yaml:"extension"`
	BuildDir         string   `yaml:"build_dir"`
	ArtifactDir      string   `yaml:"artifact_dir"`
	Marker           *string  `yaml:"marker"`
	AllowList        []string `yaml:"allow_list"`
	ReservedPrefixes []string `yaml:"reserved_prefixes"`
	Compiler         string   `yaml:"compiler"`
	BuildTool        string   `yaml:"build_tool"`
	Manifest         string   `yaml:"manifest"`
	Output           string   `yaml:"output"`
	Timeout          string   `yaml:"timeout"`
	Jobs             int      `yaml:"jobs"`
}

// Load reads the configuration at path. When explicit is false a missing
// file yields an empty configuration instead of an error.
func Load(path string, explicit bool) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &File{}, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &f, nil
}

// Apply overlays the file onto the discovery policy and toolchain.
func (f *File) Apply(policy *locator.Policy, tc *grader.Toolchain) error {
	if f.Extension != "" {
		policy.Extension = f.Extension
	}
	if f.BuildDir != "" {
		policy.BuildDir = f.BuildDir
	}
	if f.Marker != nil {
		policy.Marker = *f.Marker
	}
	if f.AllowList != nil {
		policy.AllowList = f.AllowList
	}
	if f.ReservedPrefixes != nil {
		policy.ReservedPrefixes = f.ReservedPrefixes
	}

	if f.ArtifactDir != "" {
		tc.ArtifactDir = f.ArtifactDir
	}
	if f.Manifest != "" {
		tc.Manifest = f.Manifest
	}
	if f.Compiler != "" {
		words, err := toolchain.ParseCommand(f.Compiler)
		if err != nil {
			return fmt.Errorf("compiler: %w", err)
		}
		tc.Compiler = words
	}
	if f.BuildTool != "" {
		words, err := toolchain.ParseCommand(f.BuildTool)
		if err != nil {
			return fmt.Errorf("build_tool: %w", err)
		}
		tc.BuildTool = words
	}
	return nil
}

// TimeoutDuration parses the timeout setting, zero when unset.
func (f *File) TimeoutDuration() (time.Duration, error) {
	if f.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(f.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", f.Timeout, err)
	}
	return d, nil
}
