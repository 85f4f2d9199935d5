// Face tracking and counting with a responsive overlay
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"interactive-vision/internal/app"
	"interactive-vision/internal/config"
	"interactive-vision/internal/core"
)

func main() {
	cfg, err := config.Parse(config.Enhanced, os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(core.ExitCode(err))
	}

	logger := app.InitLogger(cfg.Debug)
	logger.WithFields(logrus.Fields{
		"version":    app.AppVersion,
		"debug_mode": cfg.Debug,
	}).Info("Starting enhanced face tracking")

	err = app.New(cfg, logger).Run()
	if err != nil {
		logger.WithError(err).Error("Application stopped with error")
	} else {
		logger.Info("Application shutting down gracefully")
	}
	os.Exit(core.ExitCode(err))
}
