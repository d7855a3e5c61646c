// Package calculator is the keypad task: it owns the Calculator, renders the
// entry field and gradient buttons, and turns key and pointer messages into
// button activations.
package calculator

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	logclient "sparkcalc/sparkos/client/logger"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

type Task struct {
	disp   hal.Display
	inCap  kernel.Capability
	logCap kernel.Capability

	calc   *calc.Calculator
	fb     hal.Framebuffer
	d      *fbDisplay
	images map[ButtonID]*gradient

	started bool
	inbuf   []byte

	focus        ButtonID
	focusVisible bool
}

// New returns the task. disp may be nil to run without rendering; a nil ev
// selects calc.ExprEvaluator.
func New(disp hal.Display, inCap, logCap kernel.Capability, ev calc.Evaluator) *Task {
	return &Task{
		disp:   disp,
		inCap:  inCap,
		logCap: logCap,
		calc:   calc.New(ev),
	}
}

// Calculator exposes the expression buffer state.
func (t *Task) Calculator() *calc.Calculator { return t.calc }

func (t *Task) Step(ctx *kernel.Context) {
	if !t.started {
		t.start()
	}

	for {
		msg, ok := ctx.Recv(t.inCap)
		if !ok {
			return
		}
		switch proto.Kind(msg.Kind) {
		case proto.MsgKeyInput:
			t.handleInput(ctx, msg.Payload())
		case proto.MsgPointer:
			x, y, press, ok := proto.DecodePointerPayload(msg.Payload())
			if !ok || !press {
				continue
			}
			if id, hit := HitTest(x, y); hit {
				t.activate(ctx, id)
			}
		}
	}
}

func (t *Task) start() {
	t.started = true

	t.images = make(map[ButtonID]*gradient, len(Buttons))
	for _, b := range Buttons {
		t.images[b.ID] = newGradient(ButtonWidth, ButtonHeight, b.Style.Top, b.Style.Bottom)
	}

	if t.disp != nil {
		t.fb = t.disp.Framebuffer()
	}
	if t.fb != nil {
		t.d = newFBDisplay(t.fb)
	}
	t.renderAll()
}

func (t *Task) handleInput(ctx *kernel.Context, b []byte) {
	t.inbuf = append(t.inbuf, b...)
	for len(t.inbuf) > 0 {
		n, k, ok := nextKey(t.inbuf)
		if !ok {
			return
		}
		t.inbuf = t.inbuf[n:]
		t.handleKey(ctx, k)
	}
}

func (t *Task) handleKey(ctx *kernel.Context, k key) {
	switch k.kind {
	case keyEnter:
		t.activate(ctx, equalsButton)
	case keyEsc:
		t.activate(ctx, clearButton)
	case keyUp:
		t.moveFocus(0, -1)
	case keyDown:
		t.moveFocus(0, 1)
	case keyLeft:
		t.moveFocus(-1, 0)
	case keyRight:
		t.moveFocus(1, 0)
	case keyRune:
		if k.r == ' ' {
			t.activate(ctx, t.focus)
			return
		}
		if id, ok := ButtonForRune(k.r); ok {
			t.activate(ctx, id)
		}
	}
}

var (
	equalsButton = mustButton('=')
	clearButton  = mustButton('C')
)

func mustButton(r rune) ButtonID {
	id, ok := ButtonForRune(r)
	if !ok {
		panic("calculator: no button for " + string(r))
	}
	return id
}

func (t *Task) moveFocus(dc, dr int) {
	prev := t.focus
	t.focus = neighbor(t.focus, dc, dr)
	t.focusVisible = true
	t.renderButton(Buttons[prev])
	t.renderButton(Buttons[t.focus])
	t.present()
}

func (t *Task) activate(ctx *kernel.Context, id ButtonID) {
	if int(id) >= len(Buttons) {
		return
	}
	b := Buttons[id]
	switch b.Action {
	case ActionAppend:
		t.calc.Append(b.Token)
	case ActionClear:
		t.calc.Clear()
	case ActionSolve:
		out := t.calc.Solve()
		if !out.OK() {
			logclient.Debugf(ctx, t.logCap, "solve %q: %v", out.Input, out.Err)
		}
	}

	t.renderEntry()
	t.present()
	logclient.Infof(ctx, t.logCap, "display=%s state=%s", t.calc.Display(), t.calc.State())
}

func (t *Task) present() {
	if t.d != nil {
		_ = t.d.Display()
	}
}
