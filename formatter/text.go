package formatter

import (
	"bytes"
	"io"

	"github.com/philipp01105/logfan/core"
)

// TextFormatter formats events as one line of text in the default format
type TextFormatter struct {
	Config
}

// NewTextFormatter creates a new text formatter
func NewTextFormatter(cfg Config) *TextFormatter {
	return &TextFormatter{Config: cfg.withDefaults()}
}

// Format formats an event as text
func (f *TextFormatter) Format(ev *core.Event) ([]byte, error) {
	buf := getBuffer()
	defer putBuffer(buf)

	f.FormatEvent(ev, buf)

	// Copy buffer content to return
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

// FormatTo formats an event and writes it directly to the writer
func (f *TextFormatter) FormatTo(ev *core.Event, w io.Writer) error {
	buf := getBuffer()

	f.FormatEvent(ev, buf)

	_, err := w.Write(buf.Bytes())
	putBuffer(buf)
	return err
}

// FormatEvent writes the formatted event and a trailing newline into buf.
func (f *TextFormatter) FormatEvent(ev *core.Event, buf *bytes.Buffer) {
	f.appendBase(buf, ev)
	f.appendParams(buf, ev.Params)
	buf.WriteByte('\n')
}
