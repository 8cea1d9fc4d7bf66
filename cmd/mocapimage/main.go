// Package main is the mocapimage command itself.
package main

import (
	"os"

	"github.com/Coda-Research-Group/mocap-vae-features-sub000/cli"
	"github.com/Coda-Research-Group/mocap-vae-features-sub000/logging"
)

func main() {
	app := cli.NewApp(os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		logging.NewLogger("mocapimage", os.Stderr, logging.ERROR).Errorw("command failed", "error", err)
		os.Exit(1)
	}
}
