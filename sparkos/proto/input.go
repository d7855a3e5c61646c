package proto

import "encoding/binary"

// MsgKeyInput payloads are raw VT100 bytes: printable ASCII, control
// characters (Enter is '\r', Escape is 0x1b) and CSI arrow sequences.

// PointerPayload encodes a MsgPointer payload.
//
// Layout (little-endian):
//   - i16: x
//   - i16: y
//   - u8: 1 on press, 0 on release
func PointerPayload(x, y int, press bool) []byte {
	buf := make([]byte, 5)
	binary.LittleEndian.PutUint16(buf[0:2], uint16(int16(x)))
	binary.LittleEndian.PutUint16(buf[2:4], uint16(int16(y)))
	if press {
		buf[4] = 1
	}
	return buf
}

// DecodePointerPayload decodes a PointerPayload.
func DecodePointerPayload(payload []byte) (x, y int, press bool, ok bool) {
	if len(payload) < 5 {
		return 0, 0, false, false
	}
	x = int(int16(binary.LittleEndian.Uint16(payload[0:2])))
	y = int(int16(binary.LittleEndian.Uint16(payload[2:4])))
	return x, y, payload[4] != 0, true
}
