package hal

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

var scriptKeys = map[string]KeyEvent{
	"enter": {Code: KeyEnter, Press: true},
	"esc":   {Code: KeyEscape, Press: true},
	"up":    {Code: KeyUp, Press: true},
	"down":  {Code: KeyDown, Press: true},
	"left":  {Code: KeyLeft, Press: true},
	"right": {Code: KeyRight, Press: true},
	"space": {Press: true, Rune: ' '},
	"lt":    {Press: true, Rune: '<'},
}

// ParseKeyScript turns a scripted key sequence into key presses. Every rune
// is typed as text except names in angle brackets: <enter>, <esc>, <up>,
// <down>, <left>, <right>, <space> and <lt> for a literal '<'.
func ParseKeyScript(s string) ([]KeyEvent, error) {
	var out []KeyEvent
	for len(s) > 0 {
		if s[0] == '<' {
			end := strings.IndexByte(s, '>')
			if end < 0 {
				return nil, fmt.Errorf("key script: unterminated %q", s)
			}
			name := strings.ToLower(s[1:end])
			ev, ok := scriptKeys[name]
			if !ok {
				return nil, fmt.Errorf("key script: unknown key <%s>", name)
			}
			out = append(out, ev)
			s = s[end+1:]
			continue
		}

		r, size := utf8.DecodeRuneInString(s)
		s = s[size:]
		if r == '\n' || r == '\r' {
			out = append(out, scriptKeys["enter"])
			continue
		}
		out = append(out, KeyEvent{Press: true, Rune: r})
	}
	return out, nil
}
