// Package app wires the calculator's kernel, services and tasks to a HAL.
package app

import (
	"fmt"

	"sparkcalc/hal"
	"sparkcalc/internal/buildinfo"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/services/input"
	"sparkcalc/sparkos/services/logger"
	"sparkcalc/sparkos/tasks/calculator"
)

const defaultStepBudget = 256

type Config struct {
	// StepBudget caps task steps per host frame.
	StepBudget int

	// Evaluator replaces the built-in expression evaluator when set.
	Evaluator calc.Evaluator
}

// App is the running system: one kernel stepped from the host loop.
type App struct {
	h      hal.HAL
	k      *kernel.Kernel
	ticks  <-chan uint64
	budget int
	calc   *calculator.Task
}

// New builds the system and installs the panic handler. Nothing runs until
// the first Step.
func New(h hal.HAL, cfg Config) *App {
	if cfg.StepBudget <= 0 {
		cfg.StepBudget = defaultStepBudget
	}

	installPanicHandler(h)

	k := kernel.New()
	logEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)
	calcEP := k.NewEndpoint(kernel.RightSend | kernel.RightRecv)

	calcTask := calculator.New(h.Display(), calcEP.Restrict(kernel.RightRecv), logEP.Restrict(kernel.RightSend), cfg.Evaluator)

	k.AddTask(logger.New(h.Logger(), logEP.Restrict(kernel.RightRecv)))
	k.AddTask(input.New(h.Input(), calcEP.Restrict(kernel.RightSend)))
	k.AddTask(calcTask)

	a := &App{h: h, k: k, budget: cfg.StepBudget, calc: calcTask}
	if ht := h.Time(); ht != nil {
		a.ticks = ht.Ticks()
	}

	if l := h.Logger(); l != nil {
		l.WriteLineString(fmt.Sprintf("sparkcalc %s (commit %s) started", buildinfo.Short(), buildinfo.Commit))
	}
	return a
}

// Step forwards pending host ticks to the kernel and runs tasks until they
// are idle or the budget is spent. After a task panic it does nothing and
// leaves the panic screen up.
func (a *App) Step() error {
	if a.k.Halted() {
		return nil
	}
	a.drainTicks()
	a.k.RunUntilIdle(a.budget)
	return nil
}

func (a *App) drainTicks() {
	if a.ticks == nil {
		return
	}
	for {
		select {
		case _, ok := <-a.ticks:
			if !ok {
				a.ticks = nil
				return
			}
			a.k.Tick()
		default:
			return
		}
	}
}

// Calculator exposes the calculator state for callers driving the app
// headlessly.
func (a *App) Calculator() *calc.Calculator { return a.calc.Calculator() }

// Close detaches the process-wide panic handler.
func (a *App) Close() {
	kernel.SetPanicHandler(nil)
}
