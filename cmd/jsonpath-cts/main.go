package main

import (
	"fmt"
	"io"
	"os"

	"github.com/jacoelho/jsonpath/internal/config"
	"github.com/jacoelho/jsonpath/internal/cts"
	"github.com/jacoelho/jsonpath/internal/exit"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, exitResult := config.ParseSuite(args)
	if exitResult != nil {
		exitResult.Print(stdout, stderr)
		return exitResult.ExitCode
	}

	runner := cts.Runner{
		Logger:     cfg.Logger(stderr),
		Options:    cfg.Options(),
		CrossCheck: cfg.CrossCheck,
	}

	exitCode := 0
	for _, file := range cfg.Files {
		suite, err := cts.Load(file)
		if err != nil {
			exitResult = exit.FromError(err)
			exitResult.Print(stdout, stderr)
			return exitResult.ExitCode
		}

		summary := runner.Run(suite)
		if err := summary.Write(stdout, cfg.Report); err != nil {
			exitResult = exit.FromError(fmt.Errorf("failed to write report: %w", err))
			exitResult.Print(stdout, stderr)
			return exitResult.ExitCode
		}

		if !summary.OK() {
			exitCode = 1
		}
	}

	return exitCode
}
