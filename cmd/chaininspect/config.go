package main

import (
	"fmt"
	"os"

	flags "github.com/jessevdk/go-flags"
)

// config holds the process-wide options parsed from the command line
// before the urfave/cli subcommand dispatch takes over. It covers the
// concern shared by every subcommand: how verbosely to log.
type config struct {
	DebugLevel string `long:"debuglevel" description:"Logging level for all subsystems: trace, debug, info, warn, error, critical" default:"info"`
}

func loadConfig() (*config, []string, error) {
	cfg := &config{DebugLevel: "info"}

	parser := flags.NewParser(cfg, flags.HelpFlag|flags.IgnoreUnknown)

	rest, err := parser.ParseArgs(os.Args[1:])
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok &&
			flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	return cfg, rest, nil
}
