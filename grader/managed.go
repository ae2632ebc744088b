package grader

// managed.go grades exercises that are test targets of a build-managed project.

import (
	"context"
	"path/filepath"

	"github.com/perfgo/lingsgrade/toolchain"
	"github.com/rs/zerolog"
)

// projectRoot returns the directory holding the manifest: the exercise
// file's parent's parent (e.g. <root>/src/model.rs -> <root>).
func projectRoot(path string) string {
	return filepath.Dir(filepath.Dir(path))
}

func (g *Grader) gradeManaged(ctx context.Context, logger zerolog.Logger, name, path string, obs Observer) (bool, error) {
	opts := toolchain.CargoOptions{
		Tool:       g.cfg.Toolchain.BuildTool,
		ProjectDir: projectRoot(path),
		Manifest:   g.cfg.Toolchain.Manifest,
		NoRun:      true,
	}

	logger.Debug().Str("project", opts.ProjectDir).Msg("Building project tests")

	compiled, err := g.compile(ctx, logger, name, toolchain.BuildCargoCommand(opts), obs)
	if err != nil || !compiled {
		return false, err
	}

	opts.NoRun = false
	return g.run(ctx, logger, name, toolchain.BuildCargoCommand(opts), obs)
}
