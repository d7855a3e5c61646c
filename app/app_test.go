package app

import (
	"log/slog"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sparkcalc/hal"
	"sparkcalc/sparkos/calc"
	"sparkcalc/sparkos/tasks/calculator"
)

type fakeLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *fakeLogger) WriteLineString(s string) { l.WriteLine(slog.LevelInfo, s) }

func (l *fakeLogger) WriteLine(level slog.Level, s string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, level.String()+" "+s)
}

func (l *fakeLogger) has(prefix string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, line := range l.lines {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

type fakeHAL struct {
	log   *fakeLogger
	fb    hal.Framebuffer
	keys  chan hal.KeyEvent
	ptrs  chan hal.PointerEvent
	ticks chan uint64
}

func newFakeHAL() *fakeHAL {
	return &fakeHAL{
		log:   &fakeLogger{},
		fb:    hal.NewMemoryFramebuffer(calculator.WindowWidth, calculator.WindowHeight),
		keys:  make(chan hal.KeyEvent, 64),
		ptrs:  make(chan hal.PointerEvent, 16),
		ticks: make(chan uint64, 16),
	}
}

func (h *fakeHAL) Logger() hal.Logger   { return h.log }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }
func (h *fakeHAL) Time() hal.Time       { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return keyboard(h.keys) }
func (h *fakeHAL) Pointer() hal.Pointer         { return pointer(h.ptrs) }
func (h *fakeHAL) Ticks() <-chan uint64         { return h.ticks }

type keyboard chan hal.KeyEvent

func (k keyboard) Events() <-chan hal.KeyEvent { return k }

type pointer chan hal.PointerEvent

func (p pointer) Events() <-chan hal.PointerEvent { return p }

func (h *fakeHAL) typeText(s string) {
	for _, r := range s {
		h.keys <- hal.KeyEvent{Press: true, Rune: r}
	}
}

func TestAppRunsKeyboardSession(t *testing.T) {
	h := newFakeHAL()
	a := New(h, Config{})
	defer a.Close()

	assert.True(t, h.log.has("INFO sparkcalc dev"))

	h.typeText("7*6")
	h.keys <- hal.KeyEvent{Code: hal.KeyEnter, Press: true}
	require.NoError(t, a.Step())

	assert.Equal(t, "42", a.Calculator().Display())
	assert.True(t, h.log.has("INFO display=42 state=result"))

	h.typeText("/0=")
	require.NoError(t, a.Step())
	assert.Equal(t, "42", a.Calculator().Display(), "input is only polled on a tick")

	h.ticks <- 1
	require.NoError(t, a.Step())
	assert.Equal(t, calc.MsgDivByZero, a.Calculator().Display())
	assert.Equal(t, calc.StateError, a.Calculator().State())
	assert.True(t, h.log.has("DEBUG solve \"42/0\""))
}

func TestAppRoutesPointerPresses(t *testing.T) {
	h := newFakeHAL()
	a := New(h, Config{})
	defer a.Close()
	require.NoError(t, a.Step())

	for _, label := range []string{"8", "-", "3", "="} {
		for _, b := range calculator.Buttons {
			if b.Label == label {
				h.ptrs <- hal.PointerEvent{X: b.X + 5, Y: b.Y + 5, Press: true}
				h.ptrs <- hal.PointerEvent{X: b.X + 5, Y: b.Y + 5, Press: false}
			}
		}
	}
	h.ticks <- 1
	require.NoError(t, a.Step())

	assert.Equal(t, "5", a.Calculator().Display())
}

type panicEvaluator struct{}

func (panicEvaluator) Evaluate(string) (string, error) { panic("evaluator exploded") }

func TestAppPanicShowsPanicScreen(t *testing.T) {
	h := newFakeHAL()
	a := New(h, Config{Evaluator: panicEvaluator{}})
	defer a.Close()

	h.typeText("1=")
	require.NoError(t, a.Step())

	assert.True(t, h.log.has("ERROR sparkcalc panic: task=2 panic=evaluator exploded"))

	white := hal.RGB565(255, 255, 255)
	buf := h.fb.Buffer()
	whites := 0
	for i := 0; i+1 < len(buf); i += 2 {
		if uint16(buf[i])|uint16(buf[i+1])<<8 == white {
			whites++
		}
	}
	assert.Greater(t, whites, len(buf)/4, "panic screen should be mostly white")

	h.typeText("2")
	h.ticks <- 1
	require.NoError(t, a.Step())
	assert.Equal(t, "1", a.Calculator().Buffer())
}

func TestTakeRunes(t *testing.T) {
	p, r := takeRunes("héllo", 2)
	assert.Equal(t, "hé", p)
	assert.Equal(t, "llo", r)

	p, r = takeRunes("ab", 5)
	assert.Equal(t, "ab", p)
	assert.Equal(t, "", r)
}
