package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/perfgo/lingsgrade/config"
	"github.com/perfgo/lingsgrade/console"
	"github.com/perfgo/lingsgrade/grader"
	"github.com/perfgo/lingsgrade/locator"
	"github.com/perfgo/lingsgrade/report"
	"github.com/perfgo/lingsgrade/toolchain"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

const AppName = "lingsgrade"

const envPrefix = "LINGSGRADE_"

type App struct {
	logger  zerolog.Logger
	cli     *cli.App
	console *console.Console

	// newRunner builds the process runner; replaced in tests
	newRunner func(logger zerolog.Logger, timeout time.Duration) toolchain.Runner
}

func New() *App {

	// Set default log level to info
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	logger :=
		log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339Nano,
		})

	app := &App{
		logger:  logger,
		console: console.New(os.Stdout),
		newRunner: func(logger zerolog.Logger, timeout time.Duration) toolchain.Runner {
			return toolchain.NewExec(logger, timeout)
		},
		cli: &cli.App{
			Name:  AppName,
			Usage: "Compile and test a set of exercises and report the results",
			Flags: []cli.Flag{
				&cli.BoolFlag{
					Name:    "debug",
					Usage:   "Enable debug logging",
					EnvVars: []string{envPrefix + "DEBUG"},
				},
				&cli.StringFlag{
					Name:    "config",
					Aliases: []string{"c"},
					Usage:   "YAML configuration file",
					Value:   config.DefaultFile,
					EnvVars: []string{envPrefix + "CONFIG"},
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Usage:   "Path of the JSON report",
					Value:   report.DefaultPath,
					EnvVars: []string{envPrefix + "OUTPUT"},
				},
				&cli.DurationFlag{
					Name:    "timeout",
					Usage:   "Kill a compile or test process after this long (0 waits forever)",
					EnvVars: []string{envPrefix + "TIMEOUT"},
				},
				&cli.IntFlag{
					Name:    "jobs",
					Aliases: []string{"j"},
					Usage:   "Number of exercises graded at once",
					Value:   1,
					EnvVars: []string{envPrefix + "JOBS"},
				},
			},
			Before: func(ctx *cli.Context) error {
				if ctx.Bool("debug") {
					zerolog.SetGlobalLevel(zerolog.DebugLevel)
				}
				return nil
			},
		},
	}

	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "grade",
		Usage:  "Grade every exercise below a directory",
		Action: app.grade,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "path",
				Aliases: []string{"p"},
				Usage:   "Exercises directory",
				Value:   ".",
			},
			verboseFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "grade-single",
		Usage:  "Grade a single exercise file",
		Action: app.gradeSingle,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "file",
				Aliases:  []string{"f"},
				Usage:    "Exercise file",
				Required: true,
			},
			verboseFlag(),
		},
	})
	app.cli.Commands = append(app.cli.Commands, &cli.Command{
		Name:   "show",
		Usage:  "Show the summary of a saved report",
		Action: app.show,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Report to read (defaults to --output)",
			},
			&cli.BoolFlag{
				Name:  "failed",
				Usage: "List the exercises that did not pass",
			},
		},
	})
	return app
}

// verboseFlag returns the per-command verbosity flag.
func verboseFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "verbose",
		Aliases: []string{"v"},
		Usage:   "Show the output of passing exercises too",
	}
}

// Run parses args and executes the selected command. An interrupt cancels
// the running toolchain process.
func (a *App) Run(args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return a.cli.RunContext(ctx, args)
}

// SetVersion sets the version information for the CLI application
func (a *App) SetVersion(version, commit, date string) {
	a.cli.Version = version
	if commit != "none" && len(commit) >= 8 {
		a.cli.Version = fmt.Sprintf("%s (commit: %s, built: %s)", version, commit[:8], date)
	}
}

// settings is the merged configuration of one command invocation.
type settings struct {
	grader  grader.Config
	output  string
	timeout time.Duration
}

// loadSettings merges defaults, the config file and flags, in that order.
func (a *App) loadSettings(ctx *cli.Context) (*settings, error) {
	file, err := config.Load(ctx.String("config"), ctx.IsSet("config"))
	if err != nil {
		return nil, err
	}

	s := &settings{
		grader: grader.Config{
			Policy:    locator.DefaultPolicy(),
			Toolchain: grader.DefaultToolchain(),
			Verbose:   ctx.Bool("verbose"),
			Jobs:      1,
		},
		output: report.DefaultPath,
	}
	if err := file.Apply(&s.grader.Policy, &s.grader.Toolchain); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if s.timeout, err = file.TimeoutDuration(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if file.Output != "" {
		s.output = file.Output
	}
	if file.Jobs > 0 {
		s.grader.Jobs = file.Jobs
	}

	if ctx.IsSet("output") {
		s.output = ctx.String("output")
	}
	if ctx.IsSet("timeout") {
		s.timeout = ctx.Duration("timeout")
	}
	if ctx.IsSet("jobs") {
		s.grader.Jobs = ctx.Int("jobs")
	}
	if s.grader.Jobs < 1 {
		return nil, fmt.Errorf("invalid jobs %d: must be at least 1", s.grader.Jobs)
	}

	a.logger.Debug().
		Str("extension", s.grader.Policy.Extension).
		Str("marker", s.grader.Policy.Marker).
		Strs("compiler", s.grader.Toolchain.Compiler).
		Strs("build_tool", s.grader.Toolchain.BuildTool).
		Str("output", s.output).
		Dur("timeout", s.timeout).
		Int("jobs", s.grader.Jobs).
		Msg("Loaded settings")

	return s, nil
}

func (a *App) newGrader(s *settings) *grader.Grader {
	return grader.New(a.logger, a.newRunner(a.logger, s.timeout), a.console, s.grader)
}
