package hal

import (
	"time"

	"github.com/jonboulle/clockwork"
)

const tickDur = time.Millisecond

type hostTime struct {
	clock clockwork.Clock
	ch    chan uint64
	seq   uint64

	last time.Time
	acc  time.Duration
}

func newHostTime(clock clockwork.Clock) *hostTime {
	return &hostTime{clock: clock, ch: make(chan uint64, 1024)}
}

func (t *hostTime) Ticks() <-chan uint64 { return t.ch }

// step emits one tick per elapsed millisecond since the previous call, and a
// single tick on the first call.
func (t *hostTime) step() {
	now := t.clock.Now()
	if t.last.IsZero() {
		t.last = now
		t.acc = 0
		t.stepN(1)
		return
	}

	t.acc += now.Sub(t.last)
	t.last = now

	ticks := uint64(t.acc / tickDur)
	if ticks == 0 {
		return
	}
	t.acc = t.acc % tickDur
	t.stepN(ticks)
}

func (t *hostTime) stepN(n uint64) {
	for i := uint64(0); i < n; i++ {
		t.seq++
		select {
		case t.ch <- t.seq:
		default:
		}
	}
}
