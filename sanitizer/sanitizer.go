// Package sanitizer keeps free-form record text on a single line of the log file.
// Non-printable runes (line breaks, control characters, invalid UTF-8) are
// either passed through, hex-encoded, stripped, or backslash-escaped.
package sanitizer

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Mode selects how non-printable runes are transformed
type Mode int

const (
	None      Mode = iota // Passthrough
	HexEncode             // Encodes the rune's UTF-8 bytes as "<XXYY>"
	Strip                 // Removes the rune
	Escape                // Backslash escapes ('\n', '\t', '\u0000')
)

var modeNames = map[string]Mode{
	"raw":    None,
	"txt":    HexEncode,
	"strip":  Strip,
	"escape": Escape,
}

// ParseMode maps a configuration name to a Mode
func ParseMode(name string) (Mode, error) {
	m, ok := modeNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return None, fmt.Errorf("invalid sanitization mode: '%s' (use raw, txt, strip, or escape)", name)
	}
	return m, nil
}

// String returns the configuration name of the mode
func (m Mode) String() string {
	switch m {
	case None:
		return "raw"
	case HexEncode:
		return "txt"
	case Strip:
		return "strip"
	case Escape:
		return "escape"
	default:
		return "unknown"
	}
}

// Sanitizer applies a Mode to strings. Not safe for concurrent use, the
// internal buffer is reused between calls.
type Sanitizer struct {
	mode Mode
	buf  []byte
}

// New creates a sanitizer for the given mode
func New(mode Mode) *Sanitizer {
	return &Sanitizer{
		mode: mode,
		buf:  make([]byte, 0, 256),
	}
}

// Mode returns the configured mode
func (s *Sanitizer) Mode() Mode {
	return s.mode
}

// Sanitize returns data with non-printable runes transformed.
// Clean input is returned as-is without copying.
func (s *Sanitizer) Sanitize(data string) string {
	if s.mode == None || isClean(data) {
		return data
	}
	s.buf = s.Append(s.buf[:0], data)
	return string(s.buf)
}

// Append appends the sanitized form of data to buf
func (s *Sanitizer) Append(buf []byte, data string) []byte {
	if s.mode == None {
		return append(buf, data...)
	}

	for i := 0; i < len(data); {
		r, size := utf8.DecodeRuneInString(data[i:])
		if r == utf8.RuneError && size == 1 {
			// Invalid byte, never printable
			buf = s.transform(buf, data[i:i+1], r)
		} else if strconv.IsPrint(r) {
			buf = append(buf, data[i:i+size]...)
		} else {
			buf = s.transform(buf, data[i:i+size], r)
		}
		i += size
	}
	return buf
}

func (s *Sanitizer) transform(buf []byte, raw string, r rune) []byte {
	switch s.mode {
	case Strip:
		return buf
	case HexEncode:
		buf = append(buf, '<')
		buf = hex.AppendEncode(buf, []byte(raw))
		return append(buf, '>')
	case Escape:
		switch r {
		case '\n':
			return append(buf, '\\', 'n')
		case '\r':
			return append(buf, '\\', 'r')
		case '\t':
			return append(buf, '\\', 't')
		case '\b':
			return append(buf, '\\', 'b')
		case '\f':
			return append(buf, '\\', 'f')
		}
		if r == utf8.RuneError {
			return fmt.Appendf(buf, "\\x%02x", raw[0])
		}
		return fmt.Appendf(buf, "\\u%04x", r)
	default:
		return append(buf, raw...)
	}
}

// isClean reports whether every rune in data is printable
func isClean(data string) bool {
	for i := 0; i < len(data); i++ {
		c := data[i]
		if c < 0x20 || c == 0x7f {
			return false
		}
		if c >= utf8.RuneSelf {
			// Multi-byte input takes the slow path
			for _, r := range data[i:] {
				if r == utf8.RuneError || !strconv.IsPrint(r) {
					return false
				}
			}
			return true
		}
	}
	return true
}
