package logger

import (
	"log/slog"

	"sparkcalc/hal"
	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// Service drains MsgLogLine messages into a hal.Logger.
type Service struct {
	log hal.Logger
	ep  kernel.Capability
}

func New(log hal.Logger, ep kernel.Capability) *Service {
	return &Service{log: log, ep: ep}
}

func (s *Service) Step(ctx *kernel.Context) {
	for {
		msg, ok := ctx.Recv(s.ep)
		if !ok {
			return
		}
		if s.log == nil || msg.Kind != uint16(proto.MsgLogLine) {
			continue
		}
		level, line, ok := proto.DecodeLogLinePayload(msg.Payload())
		if !ok {
			continue
		}
		s.log.WriteLine(slogLevel(level), string(line))
	}
}

func slogLevel(l proto.LogLevel) slog.Level {
	switch l {
	case proto.LevelDebug:
		return slog.LevelDebug
	case proto.LevelWarn:
		return slog.LevelWarn
	case proto.LevelError:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
