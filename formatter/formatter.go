// Package formatter renders log records as delimited text lines.
package formatter

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/lixenwraith/quicklog/sanitizer"
)

// Field identifies one column of an output line
type Field int

const (
	FieldTime Field = iota
	FieldLevel
	FieldComponent
	FieldMessage
)

// Delimiter separates fields within a line
const Delimiter = ','

// TimestampLayout is the per-record timestamp format, microsecond precision
const TimestampLayout = "2006-01-02 15:04:05.000000"

var fieldNames = [...]string{
	FieldTime:      "TIME",
	FieldLevel:     "LEVEL",
	FieldComponent: "COMPONENT",
	FieldMessage:   "MESSAGE",
}

// String returns the configuration name of the field
func (f Field) String() string {
	if f < FieldTime || f > FieldMessage {
		return "UNKNOWN"
	}
	return fieldNames[f]
}

// ParseField resolves a case-sensitive field name
func ParseField(name string) (Field, bool) {
	for i, n := range fieldNames {
		if n == name {
			return Field(i), true
		}
	}
	return 0, false
}

// DefaultFields returns the full default column order
func DefaultFields() []Field {
	return []Field{FieldTime, FieldLevel, FieldComponent, FieldMessage}
}

// ParseFields converts a comma-separated field list into a column order.
// Unknown names are skipped; if nothing valid remains the default order is returned.
func ParseFields(list string) []Field {
	var fields []Field
	for _, name := range strings.Split(list, ",") {
		if f, ok := ParseField(strings.TrimSpace(name)); ok {
			fields = append(fields, f)
		}
	}
	if len(fields) == 0 {
		return DefaultFields()
	}
	return fields
}

// FieldsString renders a column order back into its configuration form
func FieldsString(fields []Field) string {
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.String()
	}
	return strings.Join(names, ",")
}

// Formatter builds output lines in a reusable buffer.
// Not safe for concurrent use; callers serialize access.
type Formatter struct {
	sanitizer *sanitizer.Sanitizer
	buf       []byte
}

// New creates a formatter with the provided sanitizer, passthrough if none
func New(s ...*sanitizer.Sanitizer) *Formatter {
	san := sanitizer.New(sanitizer.None)
	if len(s) > 0 && s[0] != nil {
		san = s[0]
	}
	return &Formatter{
		sanitizer: san,
		buf:       make([]byte, 0, 1024),
	}
}

// Line renders one record in the given field order, terminated by a newline.
// The returned slice is valid until the next call.
func (f *Formatter) Line(fields []Field, timestamp, level, component, message string) []byte {
	f.buf = f.buf[:0]
	for i, field := range fields {
		if i > 0 {
			f.buf = append(f.buf, Delimiter)
		}
		switch field {
		case FieldTime:
			f.buf = append(f.buf, timestamp...)
		case FieldLevel:
			f.buf = f.sanitizer.Append(f.buf, level)
		case FieldComponent:
			f.buf = f.sanitizer.Append(f.buf, component)
		case FieldMessage:
			f.buf = f.sanitizer.Append(f.buf, message)
		}
	}
	f.buf = append(f.buf, '\n')
	return f.buf
}

// FormatArgs joins args into a single space-separated message
func FormatArgs(args ...any) string {
	if len(args) == 1 {
		if s, ok := args[0].(string); ok {
			return s
		}
	}
	buf := make([]byte, 0, 64)
	for i, arg := range args {
		if i > 0 {
			buf = append(buf, ' ')
		}
		buf = AppendValue(buf, arg)
	}
	return string(buf)
}

// AppendValue appends the text representation of v.
// Types without a natural text form are dumped with go-spew.
func AppendValue(buf []byte, v any) []byte {
	switch val := v.(type) {
	case string:
		return append(buf, val...)
	case int:
		return strconv.AppendInt(buf, int64(val), 10)
	case int32:
		return strconv.AppendInt(buf, int64(val), 10)
	case int64:
		return strconv.AppendInt(buf, val, 10)
	case uint:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint32:
		return strconv.AppendUint(buf, uint64(val), 10)
	case uint64:
		return strconv.AppendUint(buf, val, 10)
	case float32:
		return strconv.AppendFloat(buf, float64(val), 'f', -1, 32)
	case float64:
		return strconv.AppendFloat(buf, val, 'f', -1, 64)
	case bool:
		return strconv.AppendBool(buf, val)
	case nil:
		return append(buf, "nil"...)
	case time.Time:
		return val.AppendFormat(buf, TimestampLayout)
	case time.Duration:
		return append(buf, val.String()...)
	case error:
		return append(buf, val.Error()...)
	case fmt.Stringer:
		return append(buf, val.String()...)
	case []byte:
		return append(buf, val...)
	default:
		var b bytes.Buffer
		dumper := &spew.ConfigState{
			Indent:                  " ",
			MaxDepth:                10,
			DisablePointerAddresses: true,
			DisableCapacities:       true,
			SortKeys:                true,
		}
		dumper.Fdump(&b, val)
		// Collapse the multi-line dump so the record stays on one line
		return append(buf, bytes.Join(bytes.Fields(b.Bytes()), []byte{' '})...)
	}
}
