package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"jay/internal/foreign"
	"jay/internal/interop"
	"jay/internal/logger"
	"jay/internal/util"

	"github.com/fatih/color"
)

var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel  string
	logFile   string
	logFormat string
	logSource bool
	// config vars
	configPath string
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	flag.StringVar(&configPath, "config", "", "Configuration file (.toml, .yaml or .yml)")
	// log config, empty values defer to the configuration file
	flag.StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
	flag.StringVar(&logFormat, "log-format", "", "Log format: json, text, pretty")
	flag.BoolVar(&logSource, "log-source", false, "Include the source file and line in log records")
}

func main() {
	flag.Parse()
	os.Exit(run(flag.Args()))
}

// run executes one command and returns the process exit code. Deferred
// cleanup, such as closing the log file, happens before main exits.
func run(args []string) int {
	if version {
		printVersion()
		return 0
	}
	if help || len(args) == 0 {
		printHelp()
		return 0
	}

	config, err := util.LoadConfiguration(configPath)
	if err != nil {
		color.Red("Error: %v", err)
		return 1
	}
	config.Version = Version
	config.BuildDate = BuildDate
	config.Commit = Commit
	applyFlags(&config)

	w := logger.OpenWriter(config.Log.File)
	if c, ok := w.(io.Closer); ok && w != io.Writer(os.Stderr) {
		defer c.Close()
	}
	log, err := logger.New(w, logger.Options{
		Level:     logger.ParseLevel(config.Log.Level),
		Format:    config.Log.Format,
		AddSource: config.Log.Source,
	})
	if err != nil {
		color.Red("Error: %v", err)
		return 1
	}
	slog.SetDefault(log)
	log.Debug("starting jay",
		slog.String("version", config.Version),
		slog.String("build_date", config.BuildDate),
		slog.String("commit", config.Commit),
		slog.String("home", config.JayHome),
		slog.String("config", config.Path))

	bridge := interop.NewBridge(log)
	if err := foreign.Register(bridge, config); err != nil {
		color.Red("Error: %v", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := execute(ctx, bridge, args, os.Stdout); err != nil {
		color.Red("Error: %v", err)
		return 1
	}
	return 0
}

func applyFlags(config *util.Configuration) {
	if logLevel != "" {
		config.Log.Level = logLevel
	}
	if logFile != "" {
		config.Log.File = logFile
	}
	if logFormat != "" {
		config.Log.Format = logFormat
	}
	if logSource {
		config.Log.Source = true
	}
}

func printVersion() {
	fmt.Printf("jay version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: jay [options] <command> [args...]

Commands:
  call <type> <method> [literal...]  Invoke a host method through the bridge.
  map <type> <method> [literal...]   Invoke a host method once per literal, concurrently.
  op <operator> <literal> [literal]  Apply a prefix or infix operator.
  types                              List the registered host types.

Options:
  -config <path>       Load configuration from a .toml, .yaml or .yml file.
                       Defaults to jay.toml, jay.yaml or jay.yml in $JAY_HOME.
  -help                Display this help information and exit.
  -version             Display version information and exit.
  -log-level <level>   Set the log level: debug, info, warn, error, none. Default is 'none'.
  -log-file <path>     Specify a log file to write logs. Default is stderr.
  -log-format <format> Set the log format: json, text, pretty. Default is 'json'.
  -log-source          Include the source file and line in log records.

Literals:
  true, false          Boolean
  nil                  Opaque null handle
  12.50, -3, 1e3       Decimal
  anything else        Text, surrounding double quotes are removed

Examples:
  jay call jay.math pow 2 10
  jay call jay.string toUpperCase '"hello"'
  jay map jay.crypto md5 a b c
  jay op + 0.1 0.2
  jay op '*' 3 ab

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}
