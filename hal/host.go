package hal

import (
	"context"
	"log/slog"

	"github.com/jonboulle/clockwork"
)

// HostConfig sizes and wires the host HAL. Zero fields take defaults.
type HostConfig struct {
	Width  int
	Height int
	Logger *slog.Logger
	Clock  clockwork.Clock
}

func (c HostConfig) withDefaults() HostConfig {
	if c.Width <= 0 {
		c.Width = 320
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return c
}

// WindowConfig controls the desktop window.
type WindowConfig struct {
	Host  HostConfig
	Title string
	Scale int
	TPS   int
}

type hostHAL struct {
	logger *hostLogger
	fb     *hostFramebuffer
	kbd    *hostKeyboard
	ptr    *hostPointer
	t      *hostTime
}

func newHost(cfg HostConfig) *hostHAL {
	cfg = cfg.withDefaults()
	return &hostHAL{
		logger: &hostLogger{log: cfg.Logger},
		fb:     newHostFramebuffer(cfg.Width, cfg.Height),
		kbd:    newHostKeyboard(),
		ptr:    newHostPointer(),
		t:      newHostTime(cfg.Clock),
	}
}

func (h *hostHAL) Logger() Logger   { return h.logger }
func (h *hostHAL) Display() Display { return hostDisplay{fb: h.fb} }
func (h *hostHAL) Input() Input     { return hostInput{kbd: h.kbd, ptr: h.ptr} }
func (h *hostHAL) Time() Time       { return h.t }

type hostDisplay struct {
	fb *hostFramebuffer
}

func (d hostDisplay) Framebuffer() Framebuffer { return d.fb }

type hostInput struct {
	kbd *hostKeyboard
	ptr *hostPointer
}

func (in hostInput) Keyboard() Keyboard { return in.kbd }
func (in hostInput) Pointer() Pointer   { return in.ptr }

type hostLogger struct {
	log *slog.Logger
}

func (l *hostLogger) WriteLineString(s string) {
	l.WriteLine(slog.LevelInfo, s)
}

func (l *hostLogger) WriteLine(level slog.Level, s string) {
	l.log.Log(context.Background(), level, s)
}
