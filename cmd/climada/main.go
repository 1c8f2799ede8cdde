// Command climada checks, plots and converts entity files (impact functions
// and discount rates) stored as YAML documents or xlsx workbooks.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"climada/internal/config"
	"climada/internal/logger"
)

const usage = `usage: climada <command> [flags] <file>...

commands:
  check     validate impact functions and discount rates
  plot      render impact functions and discount rates to images
  npv       net present value of yearly values
  convert   convert between yaml and xlsx entity files
`

type app struct {
	cfg    config.Config
	stdout io.Writer
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) < 1 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	cmd, ok := commands[args[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n\n%s", args[0], usage)
		return 2
	}

	opts, err := parseFlags(args[0], args[1:], stderr)
	if err != nil {
		return 2
	}

	cfg, err := config.Load(opts.configFile)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	log, err := logger.NewLoggerWithComponent(cfg.Logger, args[0])
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()
	log = log.With(logger.F("run_id", uuid.NewString()))
	ctx := logger.WithLogger(context.Background(), log)

	a := &app{cfg: cfg, stdout: stdout}
	if err := cmd(ctx, a, opts); err != nil {
		log.Error("command failed", logger.F("error", err))
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}
