package main

import (
	"os"

	"github.com/BlueStalker/velox/internal/config"
	"github.com/BlueStalker/velox/internal/run"
)

func main() {
	os.Exit(runMain())
}

func runMain() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	r, exitResult := run.New(cfg)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}

	return r.Run()
}
