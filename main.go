package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"sparkcalc/app"
	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/internal/config"
	"sparkcalc/internal/logging"
	"sparkcalc/sparkos/tasks/calculator"
)

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		return err
	}
	log := logging.InitLogger(cfg.LogLevel, cfg.LogFormat)

	host := hal.HostConfig{
		Width:  calculator.WindowWidth,
		Height: calculator.WindowHeight,
		Logger: log,
	}

	var a *app.App
	newApp := func(h hal.HAL) func() error {
		a = app.New(h, app.Config{StepBudget: cfg.StepBudget})
		return a.Step
	}
	defer func() {
		if a != nil {
			a.Close()
		}
	}()

	if !cfg.Headless {
		title := fmt.Sprintf("%s (%s)", cfg.Title, buildinfo.Short())
		return hal.RunWindow(hal.WindowConfig{Host: host, Title: title, Scale: cfg.Scale}, newApp)
	}

	keys, err := hal.ParseKeyScript(cfg.Keys)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err = hal.RunHeadless(ctx, hal.HeadlessConfig{Host: host, Hz: cfg.Hz, Ticks: cfg.Ticks, Keys: keys}, newApp)
	if errors.Is(err, context.Canceled) {
		err = nil
	}
	if err == nil && a != nil {
		c := a.Calculator()
		log.Info("headless run finished", "display", c.Display(), "state", c.State().String())
	}
	return err
}
