package cli

// This file contains the show command for displaying a saved report.

import (
	"github.com/perfgo/lingsgrade/report"
	"github.com/urfave/cli/v2"
)

func (a *App) show(ctx *cli.Context) error {
	path := ctx.String("file")
	if path == "" {
		s, err := a.loadSettings(ctx)
		if err != nil {
			return err
		}
		path = s.output
	}

	result, err := report.Load(path)
	if err != nil {
		return err
	}

	a.console.Heading("report " + path)
	if err := a.console.Summary(result); err != nil {
		return err
	}
	if ctx.Bool("failed") {
		a.console.FailedList(result)
	}
	return nil
}
