package proto

import "testing"

func TestLogLinePayload(t *testing.T) {
	p := LogLinePayload(LevelWarn, []byte("display=14 state=result"))
	level, line, ok := DecodeLogLinePayload(p)
	if !ok {
		t.Fatal("decode failed")
	}
	if level != LevelWarn || string(line) != "display=14 state=result" {
		t.Fatalf("got level=%s line=%q", level, line)
	}
}

func TestDecodeLogLinePayloadEdgeCases(t *testing.T) {
	if _, _, ok := DecodeLogLinePayload(nil); ok {
		t.Fatal("empty payload decoded")
	}
	level, line, ok := DecodeLogLinePayload([]byte{42, 'x'})
	if !ok || level != LevelInfo || string(line) != "x" {
		t.Fatalf("unknown level: got %s %q %v", level, line, ok)
	}
}

func TestPointerPayload(t *testing.T) {
	tests := []struct {
		x, y  int
		press bool
	}{
		{x: 0, y: 0, press: true},
		{x: 356, y: 419, press: false},
		{x: -5, y: -1, press: true},
	}
	for _, tt := range tests {
		x, y, press, ok := DecodePointerPayload(PointerPayload(tt.x, tt.y, tt.press))
		if !ok || x != tt.x || y != tt.y || press != tt.press {
			t.Fatalf("PointerPayload(%d,%d,%v) decoded to %d,%d,%v,%v", tt.x, tt.y, tt.press, x, y, press, ok)
		}
	}
	if _, _, _, ok := DecodePointerPayload([]byte{1, 2}); ok {
		t.Fatal("short payload decoded")
	}
}

func TestKindString(t *testing.T) {
	if MsgPointer.String() != "pointer" || Kind(99).String() != "unknown" {
		t.Fatal("unexpected Kind strings")
	}
}
