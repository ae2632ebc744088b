package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/perfgo/lingsgrade/console"
	"github.com/perfgo/lingsgrade/report"
	"github.com/perfgo/lingsgrade/toolchain"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type scriptedRunner func(cmd toolchain.Command) (*toolchain.Result, error)

func (f scriptedRunner) Run(_ context.Context, cmd toolchain.Command) (*toolchain.Result, error) {
	return f(cmd)
}

// failBinaries compiles everything and fails the test binaries named in failing.
func failBinaries(failing ...string) scriptedRunner {
	return func(cmd toolchain.Command) (*toolchain.Result, error) {
		for _, f := range failing {
			if cmd.Name != "rustc" && filepath.Base(cmd.Name) == f {
				return &toolchain.Result{ExitCode: 101, Stdout: "test result: FAILED"}, nil
			}
		}
		return &toolchain.Result{}, nil
	}
}

type testEnv struct {
	app    *App
	out    *bytes.Buffer
	dir    string
	config string
	report string
}

func newTestEnv(t *testing.T, runner toolchain.Runner) *testEnv {
	t.Helper()
	color.NoColor = true

	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")
	artifacts := filepath.Join(dir, "target", "debug")
	require.NoError(t, os.WriteFile(configPath, []byte("artifact_dir: "+artifacts+"\n"), 0644))

	var out bytes.Buffer
	app := New()
	app.console = console.New(&out)
	app.logger = zerolog.Nop()
	app.newRunner = func(zerolog.Logger, time.Duration) toolchain.Runner { return runner }

	return &testEnv{
		app:    app,
		out:    &out,
		dir:    dir,
		config: configPath,
		report: filepath.Join(dir, report.DefaultPath),
	}
}

func (e *testEnv) run(args ...string) error {
	full := append([]string{AppName, "--config", e.config, "--output", e.report}, args...)
	return e.app.Run(full)
}

func writeExercises(t *testing.T, root string, names ...string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(root, 0755))
	for _, n := range names {
		require.NoError(t, os.WriteFile(filepath.Join(root, n), nil, 0644))
	}
}

func TestGradeWritesReport(t *testing.T) {
	env := newTestEnv(t, failBinaries("b.rs"))
	exercises := filepath.Join(env.dir, "exercises")
	writeExercises(t, exercises, "a.rs", "b.rs", "test_helper.rs")

	require.NoError(t, env.run("grade", "--path", exercises))

	result, err := report.Load(env.report)
	require.NoError(t, err)
	require.Equal(t, 2, result.Statistics.Total)
	require.Equal(t, 1, result.Statistics.Succeeds)
	require.Equal(t, 1, result.Statistics.Failures)

	out := env.out.String()
	require.Contains(t, out, "grading all exercises...")
	require.Contains(t, out, "found 2 exercise files")
	require.Contains(t, out, "✓ a.rs")
	require.Contains(t, out, "✗ b.rs")
	require.Contains(t, out, "test result: FAILED")
	require.Contains(t, out, "50.00%")
	require.Contains(t, out, "results saved to "+env.report)
}

func TestGradeHardErrorSkipsReport(t *testing.T) {
	launchErr := errors.New("executable file not found")
	env := newTestEnv(t, scriptedRunner(func(toolchain.Command) (*toolchain.Result, error) {
		return nil, launchErr
	}))
	exercises := filepath.Join(env.dir, "exercises")
	writeExercises(t, exercises, "a.rs")

	err := env.run("grade", "--path", exercises)
	require.ErrorIs(t, err, launchErr)

	_, statErr := os.Stat(env.report)
	require.True(t, os.IsNotExist(statErr))
}

func TestGradeArtifactDirFailure(t *testing.T) {
	env := newTestEnv(t, failBinaries())
	blocker := filepath.Join(env.dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0644))
	require.NoError(t, os.WriteFile(env.config, []byte("artifact_dir: "+filepath.Join(blocker, "debug")+"\n"), 0644))

	exercises := filepath.Join(env.dir, "exercises")
	writeExercises(t, exercises, "a.rs")

	require.Error(t, env.run("grade", "--path", exercises))
	_, statErr := os.Stat(env.report)
	require.True(t, os.IsNotExist(statErr))
}

func TestGradeEmptyDirectory(t *testing.T) {
	env := newTestEnv(t, failBinaries())
	exercises := filepath.Join(env.dir, "empty")
	require.NoError(t, os.MkdirAll(exercises, 0755))

	require.NoError(t, env.run("grade", "--path", exercises))
	require.Contains(t, env.out.String(), "0.00%")

	result, err := report.Load(env.report)
	require.NoError(t, err)
	require.Empty(t, result.Exercises)
}

func TestGradeSingleCompileFailure(t *testing.T) {
	env := newTestEnv(t, scriptedRunner(func(cmd toolchain.Command) (*toolchain.Result, error) {
		if cmd.Name != "rustc" {
			t.Fatalf("test binary must not run after a failed compile")
		}
		return &toolchain.Result{ExitCode: 1, Stderr: "error: aborting due to previous error"}, nil
	}))
	exercises := filepath.Join(env.dir, "exercises")
	writeExercises(t, exercises, "move1.rs")

	require.NoError(t, env.run("grade-single", "--file", filepath.Join(exercises, "move1.rs")))

	result, err := report.Load(env.report)
	require.NoError(t, err)
	require.Len(t, result.Exercises, 1)
	require.False(t, result.Exercises[0].Result)
	require.Equal(t, 1, result.Statistics.Failures)
	require.Contains(t, env.out.String(), "compile failed: move1.rs")
}

func TestGradeSingleRequiresFile(t *testing.T) {
	env := newTestEnv(t, failBinaries())
	require.Error(t, env.run("grade-single"))
}

func TestInvalidJobs(t *testing.T) {
	env := newTestEnv(t, failBinaries())
	require.Error(t, env.run("--jobs", "0", "grade", "--path", env.dir))
}

func TestMissingExplicitConfig(t *testing.T) {
	env := newTestEnv(t, failBinaries())
	env.config = filepath.Join(env.dir, "missing.yaml")
	require.Error(t, env.run("grade", "--path", env.dir))
}

func TestShow(t *testing.T) {
	env := newTestEnv(t, failBinaries("b.rs"))
	exercises := filepath.Join(env.dir, "exercises")
	writeExercises(t, exercises, "a.rs", "b.rs")
	require.NoError(t, env.run("grade", "--path", exercises))

	env.out.Reset()
	require.NoError(t, env.run("show", "--failed"))

	out := env.out.String()
	require.Contains(t, out, "report "+env.report)
	require.Contains(t, out, "50.00%")
	require.Contains(t, out, "failed exercises (1):")
	require.True(t, strings.HasSuffix(out, "✗ b.rs\n"))
}

func TestShowMissingReport(t *testing.T) {
	env := newTestEnv(t, failBinaries())
	require.Error(t, env.run("show", "--file", filepath.Join(env.dir, "nope.json")))
}

func TestSetVersion(t *testing.T) {
	app := New()
	app.SetVersion("1.2.3", "none", "unknown")
	require.Equal(t, "1.2.3", app.cli.Version)

	app.SetVersion("1.2.3", "0123456789abcdef", "2026-01-01")
	require.Equal(t, "1.2.3 (commit: 01234567, built: 2026-01-01)", app.cli.Version)
}
