// Package cli contains the mocapimage command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"
)

const (
	// Flags.
	generalFlagConfig   = "config"
	generalFlagLogLevel = "log-level"
	generalFlagOut      = "out"
	encodeFlagStack     = "stack"

	stackedImageName = "stacked.png"
)

// NewApp returns the mocapimage application writing to the given outputs.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:            "mocapimage",
		Usage:           "normalize motion capture sequences and encode them as motion images",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  generalFlagLogLevel,
				Value: "info",
				Usage: "log entries at `LEVEL` (debug, info, warn, error) and above",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "encode",
				Usage:     "normalize and encode sequence files as PNG motion images",
				UsageText: "mocapimage encode --config FILE --out DIR [--stack] INPUT.json...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     generalFlagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load pipeline configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:     generalFlagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write images into `DIR`",
					},
					&cli.BoolFlag{
						Name:  encodeFlagStack,
						Usage: "write one image stacking every sequence instead of one image per sequence",
					},
				},
				Action: EncodeAction,
			},
			{
				Name:      "normalize",
				Usage:     "normalize sequence files without encoding them",
				UsageText: "mocapimage normalize --config FILE --out FILE INPUT.json...",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     generalFlagConfig,
						Aliases:  []string{"c"},
						Required: true,
						Usage:    "load pipeline configuration from `FILE`",
					},
					&cli.StringFlag{
						Name:     generalFlagOut,
						Aliases:  []string{"o"},
						Required: true,
						Usage:    "write normalized sequences to `FILE`",
					},
				},
				Action: NormalizeAction,
			},
			{
				Name:      "schema",
				Usage:     "print the JSON schema of the pipeline config or of its encoder block",
				UsageText: "mocapimage schema [pipeline|encoder]",
				Action:    SchemaAction,
			},
		},
	}
}
