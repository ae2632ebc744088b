// Package grader compiles and tests exercises with an external toolchain
// and folds the outcomes into a report.
package grader

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"time"

	"github.com/perfgo/lingsgrade/locator"
	"github.com/perfgo/lingsgrade/model"
	"github.com/perfgo/lingsgrade/toolchain"
	"github.com/rs/zerolog"
)

// Toolchain describes the external tools used to grade exercises.
type Toolchain struct {
	// Single-file compiler command (e.g. ["rustc"])
	Compiler []string
	// Project build tool command (e.g. ["cargo"])
	BuildTool []string
	// Manifest file name at the project root
	Manifest string
	// Directory receiving standalone test binaries, created on demand
	ArtifactDir string
}

// DefaultToolchain returns the Rust toolchain.
func DefaultToolchain() Toolchain {
	return Toolchain{
		Compiler:    []string{"rustc"},
		BuildTool:   []string{"cargo"},
		Manifest:    "Cargo.toml",
		ArtifactDir: filepath.Join("target", "debug"),
	}
}

// Config holds everything a Grader needs besides its collaborators.
type Config struct {
	Policy    locator.Policy
	Toolchain Toolchain
	// Show captured output of passing exercises too
	Verbose bool
	// Number of exercises graded at once; values below 2 grade sequentially
	Jobs int
}

type Grader struct {
	logger   zerolog.Logger
	runner   toolchain.Runner
	observer Observer
	cfg      Config
}

// New creates a grader. A nil observer discards all events.
func New(logger zerolog.Logger, runner toolchain.Runner, observer Observer, cfg Config) *Grader {
	if observer == nil {
		observer = NopObserver{}
	}
	return &Grader{
		logger:   logger,
		runner:   runner,
		observer: observer,
		cfg:      cfg,
	}
}

// Exercise grades one exercise file under the given shape. A failed build or
// failed test is a graded outcome; the returned error is always a *HardError.
func (g *Grader) Exercise(ctx context.Context, path string, shape model.ProjectShape, obs Observer) (model.Outcome, error) {
	start := time.Now()

	name, err := exerciseName(path)
	if err != nil {
		return model.Outcome{}, hardError(path, StageSetup, err)
	}

	obs.Started(name)

	if err := os.MkdirAll(g.cfg.Toolchain.ArtifactDir, 0755); err != nil {
		return model.Outcome{}, hardError(name, StageSetup, err)
	}

	logger := g.logger.With().
		Str("exercise", name).
		Str("shape", shape.String()).
		Logger()

	var passed bool
	switch shape {
	case model.ShapeManaged:
		passed, err = g.gradeManaged(ctx, logger, name, path, obs)
	default:
		passed, err = g.gradeStandalone(ctx, logger, name, path, obs)
	}
	if err != nil {
		return model.Outcome{}, err
	}

	outcome := model.Outcome{
		Name:    name,
		Passed:  passed,
		Elapsed: time.Since(start),
	}

	logger.Debug().
		Bool("passed", passed).
		Dur("elapsed", outcome.Elapsed).
		Msg("Exercise graded")

	obs.Finished(outcome)
	return outcome, nil
}

// compile runs the compile step. It returns false for a graded compile failure.
func (g *Grader) compile(ctx context.Context, logger zerolog.Logger, name string, cmd toolchain.Command, obs Observer) (bool, error) {
	res, err := g.runner.Run(ctx, cmd)
	if err != nil {
		return false, hardError(name, StageCompile, err)
	}
	if !res.Success() {
		logger.Debug().
			Int("exit_code", res.ExitCode).
			Bool("timed_out", res.TimedOut).
			Msg("Compilation failed")
		obs.Output(name, res.Stdout, res.Stderr)
		obs.CompileFailed(name)
		return false, nil
	}
	return true, nil
}

// run executes the test step and reports whether the tests passed.
func (g *Grader) run(ctx context.Context, logger zerolog.Logger, name string, cmd toolchain.Command, obs Observer) (bool, error) {
	res, err := g.runner.Run(ctx, cmd)
	if err != nil {
		return false, hardError(name, StageRun, err)
	}

	success := res.Success()
	if !success {
		logger.Debug().
			Int("exit_code", res.ExitCode).
			Bool("timed_out", res.TimedOut).
			Msg("Tests failed")
	}
	if g.cfg.Verbose || !success {
		obs.Output(name, res.Stdout, res.Stderr)
	}
	return success, nil
}

func exerciseName(path string) (string, error) {
	name := filepath.Base(path)
	if name == "." || name == string(filepath.Separator) || name == "" {
		return "", ErrNoFileName
	}
	return name, nil
}

// artifactName names the test binary of a standalone exercise. Concurrent
// runs add a hash of the path since exercises in different directories may
// share a file name.
func (g *Grader) artifactName(name, path string) string {
	if g.cfg.Jobs < 2 {
		return name
	}
	sum := sha256.Sum256([]byte(path))
	return name + "-" + hex.EncodeToString(sum[:4])
}
