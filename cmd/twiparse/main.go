package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"

	"github.com/lmittmann/tint"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/twipi/twiparse/internal/cfgutil"
	"github.com/twipi/twiparse/internal/slogctx"
)

var (
	configFile  = ""
	prefixes    []string
	allowBots   = false
	allowSelf   = false
	unescape    = false
	shell       = false
	fromBot     = false
	fromSelf    = false
	interactive = false
	jobs        = runtime.GOMAXPROCS(0)
	jsonOutput  = false
	strict      = false
	verbosity   = 0
	jsonLog     = false
)

var (
	errInvalidUsage = errors.New("invalid usage")
	errParseFailed  = errors.New("some messages are not commands")
)

func main() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage:\n")
		fmt.Fprintf(os.Stderr, "  %s [flags] [message...]\n", filepath.Base(os.Args[0]))
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Messages are read from the arguments, or one per line from stdin.\n")
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		pflag.PrintDefaults()
	}
	pflag.StringVarP(&configFile, "config", "c", configFile, "TOML or JSON config file")
	pflag.StringArrayVarP(&prefixes, "prefix", "p", nil, "command prefix, may be repeated (default \"!\")")
	pflag.BoolVar(&allowBots, "allow-bots", allowBots, "parse messages sent by bots")
	pflag.BoolVar(&allowSelf, "allow-self", allowSelf, "parse messages sent by ourselves")
	pflag.BoolVar(&unescape, "unescape", unescape, "remove backslashes from quoted arguments")
	pflag.BoolVar(&shell, "shell", shell, "split arguments as POSIX shell words")
	pflag.BoolVar(&fromBot, "bot", fromBot, "treat messages as sent by a bot")
	pflag.BoolVar(&fromSelf, "self", fromSelf, "treat messages as sent by ourselves")
	pflag.BoolVarP(&interactive, "interactive", "i", interactive, "read messages from an interactive prompt")
	pflag.IntVarP(&jobs, "jobs", "j", jobs, "number of messages from stdin to parse at once")
	pflag.BoolVar(&jsonOutput, "json", jsonOutput, "print results as JSON lines")
	pflag.BoolVar(&strict, "strict", strict, "exit with status 1 if any message is not a command")
	pflag.CountVarP(&verbosity, "verbose", "v", "verbosity level: warn (0), info, debug")
	pflag.BoolVar(&jsonLog, "json-log", jsonLog, "log output as JSON to stderr")
	pflag.Parse()

	logger := setupLogging()
	slog.SetDefault(logger)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	ctx = slogctx.With(ctx, logger)

	if err := run(ctx); err != nil {
		switch {
		case errors.Is(err, errInvalidUsage):
			pflag.Usage()
			os.Exit(2)
		case errors.Is(err, errParseFailed):
			os.Exit(1)
		default:
			logger.Error("failed to parse messages", tint.Err(err))
			os.Exit(1)
		}
	}
}

func setupLogging() *slog.Logger {
	level := cfgutil.VerbosityToLevel(slog.LevelWarn, verbosity)

	var handler slog.Handler
	if jsonLog {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			Level: level,
		})
	} else {
		handler = tint.NewHandler(os.Stderr, &tint.Options{
			Level:   level,
			NoColor: os.Getenv("NO_COLOR") != "",
		})
	}

	return slog.New(handler)
}

func run(ctx context.Context) error {
	if jobs < 1 {
		return errors.Wrap(errInvalidUsage, "--jobs must be at least 1")
	}

	parser, err := loadConfig()
	if err != nil {
		return err
	}

	slogctx.From(ctx).Info(
		"parser configured",
		"prefixes", parser.Prefixes,
		"grammar", parser.Options.Grammar,
		"allow_bots", parser.Options.AllowBots,
		"allow_self", parser.Options.AllowSelf)

	out := newPrinter(os.Stdout, jsonOutput)

	var ok bool
	switch {
	case interactive:
		ok, err = runInteractive(ctx, parser)
	case pflag.NArg() > 0:
		ok, err = runArgs(ctx, parser, out, pflag.Args())
	default:
		ok, err = runBatch(ctx, parser, out, os.Stdin, jobs)
	}
	if err != nil {
		return err
	}

	if strict && !ok {
		return errParseFailed
	}
	return nil
}
