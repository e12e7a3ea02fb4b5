package main

import (
	"os"
	"path"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/blockjournal/internal/blockjournal"
	"github.com/julianstephens/blockjournal/internal/cli"
	"github.com/julianstephens/blockjournal/internal/logger"
)

var (
	version = "blockjournal v0.1.0"
)

type LogOpts struct {
	Level  string `help:"Logging level (debug, info, warn, error)" default:"info" envvar:"BLOCKJOURNAL_LOG_LEVEL"`
	Debug  bool   `help:"Enable debug logging (overrides --level)"                envvar:"BLOCKJOURNAL_DEBUG"`
	Stream bool   `help:"Log to stdout/stderr only, skip the log file"            envvar:"BLOCKJOURNAL_LOG_STREAM"`
}

type CLI struct {
	Event    cli.EventCmd    `cmd:"" help:"Decode and dump a journal event entry"`
	Client   cli.ClientCmd   `cmd:"" help:"Decode and dump a client metadata record"`
	Tag      cli.TagCmd      `cmd:"" help:"Decode and dump a tag lineage record"`
	Fixtures cli.FixturesCmd `cmd:"" help:"Print the fixture catalogs as hex and dump output"`

	LogOpts LogOpts          `embed:"" prefix:"log-" help:"Logging options"`
	Version kong.VersionFlag `                       help:"Show version information" short:"V"`
}

func createLogger(opts LogOpts) (logger.Logger, error) {
	level := opts.Level
	if opts.Debug {
		level = "debug"
	}

	consoleLogger := logger.NewConsoleLogger(level)
	if opts.Stream {
		return consoleLogger, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	logDir := path.Join(homeDir, blockjournal.DefaultAppDir, blockjournal.DefaultLogDir)
	fileLogger, err := logger.NewFileLogger(
		logDir,
		blockjournal.DefaultLogFileName,
		blockjournal.DefaultLogMaxSize,
		blockjournal.DefaultLogMaxBackups,
	)
	if err != nil {
		return nil, err
	}

	return logger.NewMultiLogger(fileLogger, consoleLogger), nil
}

func main() {
	cliApp := &CLI{}
	ctx := kong.Parse(cliApp,
		kong.Name("blockjournal"),
		kong.Description("Inspect replicated block-storage journal records"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	lg, err := createLogger(cliApp.LogOpts)
	if err != nil {
		ctx.FatalIfErrorf(err)
	}

	defer func() {
		if c, ok := lg.(logger.Closeable); ok {
			_ = c.Close()
		}
	}()

	ctx.BindTo(lg, (*logger.Logger)(nil))
	err = ctx.Run()
	ctx.FatalIfErrorf(err)
}
