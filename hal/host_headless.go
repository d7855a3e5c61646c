package hal

import (
	"context"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Host  HostConfig
	Hz    int
	Ticks uint64

	// Keys are typed one per tick, starting with the first tick.
	Keys []KeyEvent
}

// RunHeadless runs the calculator without opening a window. It returns nil
// once cfg.Ticks ticks have run (0 runs until ctx is done).
func RunHeadless(ctx context.Context, cfg HeadlessConfig, newApp func(HAL) func() error) error {
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}

	h := newHost(cfg.Host)
	step := newApp(h)

	d := time.Second / time.Duration(cfg.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", cfg.Hz)
	}
	t := h.t.clock.NewTicker(d)
	defer t.Stop()

	keys := cfg.Keys
	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.Chan():
			if len(keys) > 0 && h.kbd.emit(keys[0]) {
				keys = keys[1:]
			}
			h.t.step()
			if step != nil {
				if err := step(); err != nil {
					return err
				}
			}
			tick++
			if cfg.Ticks > 0 && tick >= cfg.Ticks {
				return nil
			}
		}
	}
}
