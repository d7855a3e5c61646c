package proto

// LogLevel is the severity carried by a MsgLogLine.
type LogLevel uint8

const (
	LevelDebug LogLevel = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l LogLevel) String() string {
	switch l {
	case LevelDebug:
		return "debug"
	case LevelInfo:
		return "info"
	case LevelWarn:
		return "warn"
	case LevelError:
		return "error"
	default:
		return "unknown"
	}
}

// LogLinePayload encodes a MsgLogLine payload.
//
// Layout:
//   - u8: level
//   - rest: UTF-8 line without a trailing newline
//
// Delivery is best-effort; callers may drop on overflow.
func LogLinePayload(level LogLevel, line []byte) []byte {
	buf := make([]byte, 1+len(line))
	buf[0] = byte(level)
	copy(buf[1:], line)
	return buf
}

// DecodeLogLinePayload decodes a LogLinePayload. Unknown levels decode as
// LevelInfo.
func DecodeLogLinePayload(payload []byte) (level LogLevel, line []byte, ok bool) {
	if len(payload) < 1 {
		return 0, nil, false
	}
	level = LogLevel(payload[0])
	if level > LevelError {
		level = LevelInfo
	}
	return level, payload[1:], true
}
