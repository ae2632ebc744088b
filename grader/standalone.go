package grader

// standalone.go grades exercises that are single-file compilation units.

import (
	"context"
	"path/filepath"

	"github.com/perfgo/lingsgrade/toolchain"
	"github.com/rs/zerolog"
)

func (g *Grader) gradeStandalone(ctx context.Context, logger zerolog.Logger, name, path string, obs Observer) (bool, error) {
	output := filepath.Join(g.cfg.Toolchain.ArtifactDir, g.artifactName(name, path))

	compiled, err := g.compile(ctx, logger, name, toolchain.BuildCompileCommand(toolchain.CompileOptions{
		Compiler: g.cfg.Toolchain.Compiler,
		Source:   path,
		Output:   output,
	}), obs)
	if err != nil || !compiled {
		return false, err
	}

	// absolute so that the binary is never looked up in PATH
	binary, err := filepath.Abs(output)
	if err != nil {
		return false, hardError(name, StageRun, err)
	}

	logger.Debug().Str("binary", binary).Msg("Running test binary")
	return g.run(ctx, logger, name, toolchain.Command{Name: binary}, obs)
}
