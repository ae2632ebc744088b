package cli

// This file contains the grade and grade-single commands.

import (
	"github.com/perfgo/lingsgrade/model"
	"github.com/perfgo/lingsgrade/report"
	"github.com/urfave/cli/v2"
)

func (a *App) grade(ctx *cli.Context) error {
	s, err := a.loadSettings(ctx)
	if err != nil {
		return err
	}

	a.console.Heading("grading all exercises...")

	result, err := a.newGrader(s).GradeAll(ctx.Context, ctx.String("path"))
	if err != nil {
		a.logger.Error().Err(err).Msg("Grading aborted")
		return err
	}
	return a.finish(result, s.output)
}

func (a *App) gradeSingle(ctx *cli.Context) error {
	s, err := a.loadSettings(ctx)
	if err != nil {
		return err
	}

	a.console.Heading("grading single exercise...")

	result, err := a.newGrader(s).GradeSingle(ctx.Context, ctx.String("file"))
	if err != nil {
		a.logger.Error().Err(err).Msg("Grading aborted")
		return err
	}
	return a.finish(result, s.output)
}

// finish prints the summary and persists the report. It only runs after a
// grading run completed without a hard error.
func (a *App) finish(result *model.GradeResult, output string) error {
	if err := a.console.Summary(result); err != nil {
		a.logger.Warn().Err(err).Msg("Failed to render summary")
	}

	if err := report.Save(output, result); err != nil {
		return err
	}
	a.console.Info("results saved to " + output)

	a.logger.Debug().
		Str("report", output).
		Int("total", result.Statistics.Total).
		Int("failures", result.Statistics.Failures).
		Msg("Recorded grade result")
	return nil
}
