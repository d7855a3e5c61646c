// Package input forwards host keyboard and pointer events to a consumer
// endpoint as kernel messages.
package input

import (
	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

type Service struct {
	in     hal.Input
	outCap kernel.Capability

	keys     <-chan hal.KeyEvent
	pointers <-chan hal.PointerEvent
	started  bool

	pending    []byte
	pendingPtr [][]byte
}

// New polls in once per tick and sends MsgKeyInput and MsgPointer messages to
// outCap.
func New(in hal.Input, outCap kernel.Capability) *Service {
	return &Service{in: in, outCap: outCap}
}

func (s *Service) Step(ctx *kernel.Context) {
	if !s.started {
		s.started = true
		if s.in != nil {
			if kbd := s.in.Keyboard(); kbd != nil {
				s.keys = kbd.Events()
			}
			if ptr := s.in.Pointer(); ptr != nil {
				s.pointers = ptr.Events()
			}
		}
	}

	s.drainKeys()
	s.drainPointers()
	s.flush(ctx)
	ctx.BlockOnTick()
}

func (s *Service) drainKeys() {
	if s.keys == nil {
		return
	}
	for {
		select {
		case ev := <-s.keys:
			if ev.Press {
				s.pending = append(s.pending, vt100FromKey(ev)...)
			}
		default:
			return
		}
	}
}

func (s *Service) drainPointers() {
	if s.pointers == nil {
		return
	}
	for {
		select {
		case ev := <-s.pointers:
			s.pendingPtr = append(s.pendingPtr, proto.PointerPayload(ev.X, ev.Y, ev.Press))
		default:
			return
		}
	}
}

// flush sends as much as the consumer queue accepts and keeps the rest.
func (s *Service) flush(ctx *kernel.Context) {
	if !s.outCap.Valid() {
		s.pending = nil
		s.pendingPtr = nil
		return
	}

	for len(s.pending) > 0 {
		chunk := s.pending
		if len(chunk) > kernel.MaxMessageBytes {
			chunk = chunk[:kernel.MaxMessageBytes]
		}
		res := ctx.SendToResult(s.outCap, uint16(proto.MsgKeyInput), chunk)
		if res == kernel.SendErrQueueFull {
			break
		}
		if res != kernel.SendOK {
			s.pending = nil
			break
		}
		s.pending = s.pending[len(chunk):]
	}

	for len(s.pendingPtr) > 0 {
		res := ctx.SendToResult(s.outCap, uint16(proto.MsgPointer), s.pendingPtr[0])
		if res == kernel.SendErrQueueFull {
			return
		}
		if res != kernel.SendOK {
			s.pendingPtr = nil
			return
		}
		s.pendingPtr = s.pendingPtr[1:]
	}
}

func vt100FromKey(ev hal.KeyEvent) []byte {
	if ev.Rune != 0 {
		return []byte(string(ev.Rune))
	}

	switch ev.Code {
	case hal.KeyEnter:
		return []byte{'\r'}
	case hal.KeyEscape:
		return []byte{0x1b}
	case hal.KeyUp:
		return []byte("\x1b[A")
	case hal.KeyDown:
		return []byte("\x1b[B")
	case hal.KeyRight:
		return []byte("\x1b[C")
	case hal.KeyLeft:
		return []byte("\x1b[D")
	default:
		return nil
	}
}
