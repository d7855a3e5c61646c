package logger

import (
	"fmt"

	"sparkcalc/sparkos/kernel"
	"sparkcalc/sparkos/proto"
)

// Log sends a log line to the logger service. Lines longer than one message
// are truncated.
//
// The call is best-effort: it may drop on queue full.
func Log(ctx *kernel.Context, logCap kernel.Capability, level proto.LogLevel, line string) kernel.SendResult {
	if ctx == nil {
		return kernel.SendErrInvalidFromCap
	}
	b := []byte(line)
	if len(b) > kernel.MaxMessageBytes-1 {
		b = b[:kernel.MaxMessageBytes-1]
	}
	return ctx.SendToResult(logCap, uint16(proto.MsgLogLine), proto.LogLinePayload(level, b))
}

func Infof(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, proto.LevelInfo, fmt.Sprintf(format, args...))
}

func Debugf(ctx *kernel.Context, logCap kernel.Capability, format string, args ...any) kernel.SendResult {
	return Log(ctx, logCap, proto.LevelDebug, fmt.Sprintf(format, args...))
}
