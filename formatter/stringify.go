package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
	"unicode/utf8"

	"github.com/philipp01105/logfan/core"
)

// Stringify renders ev in the default format using the shared config:
//
//	2021-02-16T00:42:20.777Z [DEBUG] [X] hi :: {"a":1}
func Stringify(ev *core.Event) string {
	return Shared().Stringify(ev)
}

// StringifyBase renders ev without its params using the shared config.
func StringifyBase(ev *core.Event) string {
	return Shared().StringifyBase(ev)
}

// Stringify renders ev including its params.
func (c Config) Stringify(ev *core.Event) string {
	if ev == nil {
		return "<nil>"
	}
	c = c.withDefaults()
	buf := getBuffer()
	defer putBuffer(buf)
	c.appendBase(buf, ev)
	c.appendParams(buf, ev.Params)
	return buf.String()
}

// StringifyBase renders timestamp, level, tag and message, leaving out params.
func (c Config) StringifyBase(ev *core.Event) string {
	if ev == nil {
		return "<nil>"
	}
	c = c.withDefaults()
	buf := getBuffer()
	defer putBuffer(buf)
	c.appendBase(buf, ev)
	return buf.String()
}

// MessageWithParams renders the message followed by the joined params.
func (c Config) MessageWithParams(ev *core.Event) string {
	c = c.withDefaults()
	return ev.Message + JoinParams(ev.Params, c.Separator, c.MaxLength)
}

func (c Config) appendBase(buf *bytes.Buffer, ev *core.Event) {
	buf.Write(ev.Time().AppendFormat(buf.AvailableBuffer(), c.TimestampFormat))
	buf.WriteString(" [")
	buf.WriteString(c.LevelNames.Get(ev.Level))
	buf.WriteString("] [")
	buf.WriteString(ev.Tag)
	buf.WriteString("] ")
	buf.WriteString(ev.Message)
}

func (c Config) appendParams(buf *bytes.Buffer, params []any) {
	for _, p := range params {
		buf.WriteString(c.Separator)
		buf.WriteString(StringifyParam(p, c.MaxLength))
	}
}

// JoinParams stringifies every param and prefixes each with sep. It returns
// "" for no params.
func JoinParams(params []any, sep string, maxLength int) string {
	if len(params) == 0 {
		return ""
	}
	buf := getBuffer()
	defer putBuffer(buf)
	for _, p := range params {
		buf.WriteString(sep)
		buf.WriteString(StringifyParam(p, maxLength))
	}
	return buf.String()
}

// StringifyParam JSON-encodes v and truncates the result past maxLength
// runes. Values JSON cannot encode fall back to a plain string form.
func StringifyParam(v any, maxLength int) string {
	return Truncate(StringifySafe(v), maxLength)
}

// StringifySafe JSON-encodes v without HTML escaping. Errors encode as their
// message. When encoding fails the value is coerced to a string instead.
func StringifySafe(v any) string {
	if err, ok := v.(error); ok && !isJSONMarshaler(v) {
		v = err.Error()
	}
	buf := getBuffer()
	defer putBuffer(buf)
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return coerce(v)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'}))
}

func isJSONMarshaler(v any) bool {
	_, ok := v.(json.Marshaler)
	return ok
}

// coerce turns a value JSON rejected into text. Container kinds only report
// their type since they may be self-referential.
func coerce(v any) string {
	if s, ok := v.(fmt.Stringer); ok {
		return s.String()
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Pointer, reflect.Struct, reflect.Interface:
		return fmt.Sprintf("[%T]", v)
	}
	return fmt.Sprint(v)
}

// Truncate shortens s to n runes and appends "..." when it is longer.
// A negative n disables truncation.
func Truncate(s string, n int) string {
	if n < 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	i := 0
	for j := range s {
		if i == n {
			return s[:j] + "..."
		}
		i++
	}
	return s
}
