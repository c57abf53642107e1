// Command boxdump lays out an HTML document and prints the geometry
// of the resulting boxes as YAML.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nichevision/flyingsaucer-sub000/config"
	"github.com/nichevision/flyingsaucer-sub000/logger"
	"github.com/nichevision/flyingsaucer-sub000/utils"
)

// initializeAppContext loads the configuration and the loggers,
// once the command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error
	e := envFromContext(ctx)

	configFile := cmd.String("config")
	if e.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		e.Cfg.Logging.Level = "debug"
	}
	e.Log = e.Cfg.Logging.Prepare()
	logger.SetLogger(e.Log)

	e.Log.Debug("Program started", zap.Strings("args", os.Args), zap.String("ver", utils.VersionString), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		e.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	e := envFromContext(ctx)
	if e.Log == nil {
		return nil
	}
	e.Log.Debug("Program ended", zap.Duration("elapsed", e.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))

	if er := e.Log.Sync(); er != nil && !errors.Is(er, syscall.EINVAL) && !errors.Is(er, syscall.ENOTTY) {
		err = multierr.Append(err, fmt.Errorf("unable to sync logs: %w", er))
	}
	logger.SetLogger(nil)
	return err
}

var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	if e := envFromContext(ctx); e.Log != nil {
		e.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = true
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error { return err }

func newApp() *cli.Command {
	return &cli.Command{
		Name:            "boxdump",
		Usage:           "lays out HTML documents and dumps the box geometry (YAML)",
		Version:         utils.VersionString + " (" + runtime.Version() + ")",
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log the layout decisions"},
		},
		Commands: []*cli.Command{
			{
				Name:         "dump",
				Usage:        "Lays out an HTML file and outputs its box tree",
				OnUsageError: usageErrorHandler,
				Action:       runDump,
				ArgsUsage:    "SOURCE [DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "pages", Aliases: []string{"p"}, Usage: "output the lines of each page instead of the box tree"},
					&cli.BoolFlag{Name: "flow", Usage: "lay out on one continuous canvas, ignoring the pagination setting"},
					&cli.BoolFlag{Name: "break-anywhere", Usage: "split words that do not fit on a line"},
					&cli.StringSliceFlag{Name: "css", Usage: "apply the stylesheet `FILE` after the document ones (repeatable)"},
				},
			},
			{
				Name:         "dumpconfig",
				Usage:        "Dumps either default or actual configuration (YAML)",
				OnUsageError: usageErrorHandler,
				Action:       outputConfiguration,
				ArgsUsage:    "[DESTINATION]",
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
				},
			},
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background()), os.Interrupt, syscall.SIGTERM)

	var err error
	// os.Exit skips the deferred calls: it must stay the last one
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp().Run(ctx, os.Args)
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) error {
	e := envFromContext(ctx)

	cfg := e.Cfg
	if cmd.Bool("default") {
		cfg = config.Default()
	}
	data, err := config.Dump(cfg)
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}
	return writeOutput(cmd.Args().Get(0), data)
}

// writeOutput writes [data] to the file [fname], or to stdout
// when [fname] is empty.
func writeOutput(fname string, data []byte) (err error) {
	out := os.Stdout
	if len(fname) > 0 {
		if out, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			if er := out.Close(); er != nil {
				err = multierr.Append(err, fmt.Errorf("unable to close '%s': %w", fname, er))
			}
		}()
	}
	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write output: %w", err)
	}
	return nil
}
