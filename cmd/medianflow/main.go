// Command medianflow replays timestamped price observations from CSV files
// and writes one output row per change of the running median.
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"

	"medianflow/config"
	"medianflow/csvsink"
	"medianflow/csvsource"
	"medianflow/replay"
)

const (
	exitOK        = 0
	exitConfig    = 2
	exitRead      = 3
	exitCreateDir = 4
	exitOpenFile  = 5
	exitUnhandled = 10
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	flags := pflag.NewFlagSet("medianflow", pflag.ContinueOnError)
	configPath := flags.StringP("config", "c", "examples/config.toml", "path to config TOML")
	help := flags.BoolP("help", "h", false, "show help")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		fmt.Fprintln(os.Stderr, "error parsing command line:", err)
		return exitConfig
	}
	if *help {
		flags.PrintDefaults()
		return exitOK
	}

	logrus.WithField("config", *configPath).Info("starting medianflow")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logrus.WithError(err).Error("configuration error")
		return exitConfig
	}

	reader := csvsource.NewReader(cfg.Main.FilenameMask)
	observations, err := reader.ReadDir(cfg.Main.Input)
	if err != nil {
		logrus.WithError(err).Error("failed to read input")
		return exitRead
	}
	logrus.WithFields(logrus.Fields{
		"input":        cfg.Main.Input,
		"observations": len(observations),
	}).Info("input loaded")

	pipeline := replay.NewPipeline(cfg.NewEstimator())
	records := pipeline.Run(observations)

	path, err := csvsink.Write(cfg.Main.Output, records)
	if err != nil {
		logrus.WithError(err).Error("failed to write output")
		switch {
		case errors.Is(err, csvsink.ErrCreateDir):
			return exitCreateDir
		case errors.Is(err, csvsink.ErrOpenFile):
			return exitOpenFile
		default:
			return exitUnhandled
		}
	}

	logrus.WithFields(logrus.Fields{
		"strategy": cfg.Estimator.Strategy,
		"rows":     len(records),
		"output":   path,
	}).Info("done")
	return exitOK
}
