package sanitizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizer(t *testing.T) {
	testCases := []struct {
		name     string
		input    string
		mode     Mode
		expected string
	}{
		{
			name:     "none mode passes through",
			input:    "hello\x00world\n",
			mode:     None,
			expected: "hello\x00world\n",
		},
		{
			name:     "hex encode null byte",
			input:    "test\x00data",
			mode:     HexEncode,
			expected: "test<00>data",
		},
		{
			name:     "hex encode line break",
			input:    "line1\nline2",
			mode:     HexEncode,
			expected: "line1<0a>line2",
		},
		{
			name:     "hex encode control chars",
			input:    "bell\x07tab\x09form\x0c",
			mode:     HexEncode,
			expected: "bell<07>tab<09>form<0c>",
		},
		{
			name:     "hex encode preserves printable",
			input:    "Hello World 123!@#",
			mode:     HexEncode,
			expected: "Hello World 123!@#",
		},
		{
			name:     "hex encode multi-byte control",
			input:    "line1\u0085line2",
			mode:     HexEncode,
			expected: "line1<c285>line2",
		},
		{
			name:     "hex encode preserves UTF-8",
			input:    "Hello 世界 ✓",
			mode:     HexEncode,
			expected: "Hello 世界 ✓",
		},
		{
			name:     "hex encode invalid byte",
			input:    "bad\xffbyte",
			mode:     HexEncode,
			expected: "bad<ff>byte",
		},
		{
			name:     "strip removes control chars",
			input:    "clean\x00\x07\ntxt",
			mode:     Strip,
			expected: "cleantxt",
		},
		{
			name:     "strip preserves spaces",
			input:    "hello world",
			mode:     Strip,
			expected: "hello world",
		},
		{
			name:     "escape common control chars",
			input:    "line1\nline2\ttab\rreturn",
			mode:     Escape,
			expected: "line1\\nline2\\ttab\\rreturn",
		},
		{
			name:     "escape unicode control",
			input:    "nul\x00end",
			mode:     Escape,
			expected: "nul\\u0000end",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s := New(tc.mode)
			assert.Equal(t, tc.expected, s.Sanitize(tc.input))
		})
	}
}

func TestSanitizerAppend(t *testing.T) {
	s := New(HexEncode)
	buf := []byte("prefix,")
	buf = s.Append(buf, "a\nb")
	assert.Equal(t, "prefix,a<0a>b", string(buf))
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input    string
		expected Mode
		wantErr  bool
	}{
		{"raw", None, false},
		{"txt", HexEncode, false},
		{" Strip ", Strip, false},
		{"escape", Escape, false},
		{"json", None, true},
		{"", None, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			mode, err := ParseMode(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, mode)
			assert.Equal(t, tt.expected, New(mode).Mode())
		})
	}
}

func TestModeStringRoundTrip(t *testing.T) {
	for _, m := range []Mode{None, HexEncode, Strip, Escape} {
		parsed, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, parsed)
	}
}
