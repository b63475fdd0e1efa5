package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/ironsheep/raster-tools-mcp/internal/logger"
	"github.com/ironsheep/raster-tools-mcp/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// logLevelEnv supplies the default for --log-level.
const logLevelEnv = "RASTER_MCP_LOG_LEVEL"

type config struct {
	LogLevel    string
	Console     bool
	ShowVersion bool
	ShowHelp    bool
}

func main() {
	cfg, flags, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	switch {
	case cfg.ShowHelp:
		printHelp(os.Stdout, flags)
		return
	case cfg.ShowVersion:
		fmt.Printf("%s %s\n", server.Name, Version)
		fmt.Printf("  Build time: %s\n", BuildTime)
		fmt.Printf("  Git commit: %s\n", GitCommit)
		return
	}

	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}

	// stdout carries the protocol, so logs go to stderr.
	var log zerolog.Logger
	if cfg.Console {
		log = logger.NewConsole(os.Stderr, level)
	} else {
		log = logger.New(os.Stderr, level)
	}
	log.Debug().
		Str("version", Version).
		Str("built", BuildTime).
		Str("commit", GitCommit).
		Msg("starting raster MCP server")

	srv := server.New(log)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
}

// parseFlags defines and parses command-line flags, returning them in a
// config.
func parseFlags(args []string) (*config, *pflag.FlagSet, error) {
	cfg := &config{}
	flags := pflag.NewFlagSet(server.Name, pflag.ContinueOnError)
	flags.SetOutput(io.Discard)

	flags.StringVar(&cfg.LogLevel, "log-level", os.Getenv(logLevelEnv), "Log level: trace, debug, info, warn, error (default from "+logLevelEnv+", else info).")
	flags.BoolVar(&cfg.Console, "console", false, "Write human-readable logs instead of JSON.")
	flags.BoolVarP(&cfg.ShowVersion, "version", "v", false, "Print version information.")
	flags.BoolVarP(&cfg.ShowHelp, "help", "h", false, "Print this help message.")

	if err := flags.Parse(args); err != nil {
		return nil, flags, err
	}
	return cfg, flags, nil
}

func printHelp(w io.Writer, flags *pflag.FlagSet) {
	fmt.Fprintf(w, "%s - MCP server for raster thresholding, geometry and morphology\n\n", server.Name)
	fmt.Fprintf(w, "Usage: %s [options]\n\nOptions:\n", server.Name)
	fmt.Fprint(w, flags.FlagUsages())
	fmt.Fprintln(w)
	fmt.Fprintln(w, "This server communicates via MCP protocol over stdin/stdout.")
	fmt.Fprintln(w, "Configure it in your MCP client.")
}
