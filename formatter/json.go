package formatter

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"

	"github.com/joeycumines/go-utilpkg/jsonenc"
	"github.com/philipp01105/logfan/core"
)

// JSONFormatter formats events as one JSON object per line:
//
//	{"time":"...","level":400,"levelName":"INFO","tag":"db","message":"...","params":[...]}
type JSONFormatter struct {
	Config
}

// NewJSONFormatter creates a new JSON formatter
func NewJSONFormatter(cfg Config) *JSONFormatter {
	return &JSONFormatter{Config: cfg.withDefaults()}
}

// Format formats an event as JSON
func (f *JSONFormatter) Format(ev *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEvent(ev, buf)

	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an event as JSON and writes it directly to the writer
func (f *JSONFormatter) FormatTo(ev *core.Event, w io.Writer) error {
	buf := getBuffer()

	f.FormatEvent(ev, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEvent formats an event as JSON into the given buffer (implements BufferFormatter).
func (f *JSONFormatter) FormatEvent(ev *core.Event, buf *bytes.Buffer) {
	b := buf.AvailableBuffer()

	b = append(b, `{"time":`...)
	b = jsonenc.AppendString(b, ev.Time().Format(f.TimestampFormat))
	b = append(b, `,"level":`...)
	b = strconv.AppendInt(b, int64(ev.Level), 10)
	b = append(b, `,"levelName":`...)
	b = jsonenc.AppendString(b, f.LevelNames.Get(ev.Level))
	b = append(b, `,"tag":`...)
	b = jsonenc.AppendString(b, ev.Tag)
	b = append(b, `,"message":`...)
	b = jsonenc.AppendString(b, ev.Message)

	if len(ev.Params) > 0 {
		b = append(b, `,"params":[`...)
		for i, p := range ev.Params {
			if i > 0 {
				b = append(b, ',')
			}
			b = appendJSONParam(b, p)
		}
		b = append(b, ']')
	}

	b = append(b, "}\n"...)
	buf.Write(b)
}

// appendJSONParam embeds p as raw JSON, or as a string when it cannot be
// encoded. Params are not truncated in JSON output.
func appendJSONParam(dst []byte, p any) []byte {
	if f, ok := p.(core.Field); ok {
		if out, err := f.AppendJSON(dst); err == nil {
			return out
		}
		return jsonenc.AppendString(dst, f.String())
	}
	s := StringifySafe(p)
	if json.Valid([]byte(s)) {
		return append(dst, s...)
	}
	return jsonenc.AppendString(dst, s)
}
