package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/btcgateway/chainmodel/build"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[chaininspect] %v\n", err)
	os.Exit(1)
}

func main() {
	cfg, rest, err := loadConfig()
	if err != nil {
		fatal(err)
	}
	if err := build.ParseAndSetDebugLevels(cfg.DebugLevel, logManager{}); err != nil {
		fatal(err)
	}

	app := cli.NewApp()
	app.Name = "chaininspect"
	app.Usage = "decode and inspect raw Bitcoin chain objects"
	app.Commands = []cli.Command{
		decodeTxCommand,
		decodeBlockCommand,
		decodeHeaderCommand,
	}

	if err := app.Run(append([]string{os.Args[0]}, rest...)); err != nil {
		fatal(err)
	}
}

func readHexArg(ctx *cli.Context) ([]byte, error) {
	if ctx.NArg() != 1 {
		return nil, fmt.Errorf("expected exactly one hex-encoded argument")
	}
	raw, err := hex.DecodeString(ctx.Args().First())
	if err != nil {
		return nil, fmt.Errorf("decoding hex argument: %w", err)
	}
	return raw, nil
}
