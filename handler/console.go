package handler

import (
	"bytes"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/formatter"
)

// ConsoleConfig holds configuration for console handler
type ConsoleConfig struct {
	// Writer receives Log and below (default: os.Stdout)
	Writer io.Writer
	// ErrWriter receives Warn, Error and Fatal (default: Writer)
	ErrWriter io.Writer
	// Formatter renders events passed to OnEvent (default: TextFormatter)
	Formatter formatter.Formatter
	// Params controls how console call params are joined (default: shared config)
	Params *formatter.Config
	// Color tints warn and error lines
	Color bool
	// ConcurrentWriter indicates the writers support concurrent Write calls.
	// Automatically detected for io.Discard and *os.File.
	ConcurrentWriter bool
}

// applyConsoleDefaults fills in zero-value fields with defaults.
func applyConsoleDefaults(cfg *ConsoleConfig) {
	if cfg.Writer == nil {
		cfg.Writer = os.Stdout
	}
	if cfg.ErrWriter == nil {
		cfg.ErrWriter = cfg.Writer
	}
	if cfg.Formatter == nil {
		cfg.Formatter = formatter.NewTextFormatter(formatter.Config{})
	}
}

// isConcurrentSafeWriter returns true if the writer is known to be safe for
// concurrent Write calls, allowing the handler to skip write-level locking.
func isConcurrentSafeWriter(w io.Writer) bool {
	if w == io.Discard {
		return true
	}
	_, ok := w.(*os.File)
	return ok
}

// ConsoleHandler is a synchronous console. It is both a FullConsole, so it
// can serve as the target of a Broadcaster, and an event listener that
// writes formatted events.
type ConsoleHandler struct {
	writer          io.Writer
	errWriter       io.Writer
	formatter       formatter.Formatter
	bufferFormatter formatter.BufferFormatter
	params          *formatter.Config
	concurrentSafe  bool
	warnColor       *color.Color
	errorColor      *color.Color
	stats           *Stats
	mu              sync.Mutex // protects syncBuf and the writers
	syncBuf         bytes.Buffer
	parBufPool      sync.Pool
}

// NewConsoleHandler creates a new console handler.
func NewConsoleHandler(cfg ConsoleConfig) *ConsoleHandler {
	applyConsoleDefaults(&cfg)
	h := &ConsoleHandler{
		writer:    cfg.Writer,
		errWriter: cfg.ErrWriter,
		formatter: cfg.Formatter,
		params:    cfg.Params,
		concurrentSafe: cfg.ConcurrentWriter ||
			(isConcurrentSafeWriter(cfg.Writer) && isConcurrentSafeWriter(cfg.ErrWriter)),
		stats: NewStats(),
	}
	h.bufferFormatter, _ = cfg.Formatter.(formatter.BufferFormatter)
	if cfg.Color {
		h.warnColor = color.New(color.FgYellow)
		h.errorColor = color.New(color.FgRed, color.Bold)
	}
	h.syncBuf.Grow(256)
	h.parBufPool = sync.Pool{
		New: func() any {
			b := new(bytes.Buffer)
			b.Grow(256)
			return b
		},
	}
	return h
}

// OnEvent formats ev and writes it. Under no contention the handler-owned
// buffer is used; concurrent callers format into a pooled buffer outside
// the lock.
func (h *ConsoleHandler) OnEvent(ev *core.Event) error {
	w := h.writerFor(ev.Level)
	if h.bufferFormatter != nil {
		if h.mu.TryLock() {
			h.syncBuf.Reset()
			h.bufferFormatter.FormatEvent(ev, &h.syncBuf)
			err := h.writeLocked(w, ev.Level, h.syncBuf.Bytes())
			h.mu.Unlock()
			return h.count(err)
		}

		buf := h.parBufPool.Get().(*bytes.Buffer)
		buf.Reset()
		h.bufferFormatter.FormatEvent(ev, buf)
		err := h.write(w, ev.Level, buf.Bytes())
		h.parBufPool.Put(buf)
		return h.count(err)
	}

	data, err := h.formatter.Format(ev)
	if err != nil {
		return h.count(err)
	}
	return h.count(h.write(w, ev.Level, data))
}

func (h *ConsoleHandler) writerFor(level core.Level) io.Writer {
	if level >= core.WarnLevel {
		return h.errWriter
	}
	return h.writer
}

// write serializes the write unless the writer is safe for concurrent use.
func (h *ConsoleHandler) write(w io.Writer, level core.Level, p []byte) error {
	if h.concurrentSafe && h.warnColor == nil {
		_, err := w.Write(p)
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.writeLocked(w, level, p)
}

func (h *ConsoleHandler) writeLocked(w io.Writer, level core.Level, p []byte) error {
	var c *color.Color
	switch {
	case level >= core.ErrorLevel:
		c = h.errorColor
	case level >= core.WarnLevel:
		c = h.warnColor
	}
	if c == nil {
		_, err := w.Write(p)
		return err
	}
	_, err := c.Fprint(w, string(p))
	return err
}

func (h *ConsoleHandler) count(err error) error {
	if err != nil {
		h.stats.IncrementFailed()
		return err
	}
	h.stats.IncrementProcessed()
	return nil
}

func (h *ConsoleHandler) print(level core.Level, msg string, params []any) {
	cfg := formatter.Shared()
	if h.params != nil {
		cfg = *h.params
	}
	buf := h.parBufPool.Get().(*bytes.Buffer)
	buf.Reset()
	buf.WriteString(msg)
	if len(params) > 0 {
		buf.WriteString(cfg.MessageWithParams(&core.Event{Params: params}))
	}
	buf.WriteByte('\n')
	_ = h.count(h.write(h.writerFor(level), level, buf.Bytes()))
	h.parBufPool.Put(buf)
}

// Log writes msg and params to the standard writer.
func (h *ConsoleHandler) Log(msg string, params ...any) { h.print(core.DebugLevel, msg, params) }

// Warn writes msg and params to the error writer.
func (h *ConsoleHandler) Warn(msg string, params ...any) { h.print(core.WarnLevel, msg, params) }

// Error writes msg and params to the error writer.
func (h *ConsoleHandler) Error(msg string, params ...any) { h.print(core.ErrorLevel, msg, params) }

// Verbose writes msg and params to the standard writer.
func (h *ConsoleHandler) Verbose(msg string, params ...any) {
	h.print(core.VerboseLevel, msg, params)
}

// Trace writes msg and params to the standard writer.
func (h *ConsoleHandler) Trace(msg string, params ...any) { h.print(core.TraceLevel, msg, params) }

// Debug writes msg and params to the standard writer.
func (h *ConsoleHandler) Debug(msg string, params ...any) { h.print(core.DebugLevel, msg, params) }

// Info writes msg and params to the standard writer.
func (h *ConsoleHandler) Info(msg string, params ...any) { h.print(core.InfoLevel, msg, params) }

// Fatal writes msg and params to the error writer. It does not exit.
func (h *ConsoleHandler) Fatal(msg string, params ...any) { h.print(core.FatalLevel, msg, params) }

// Stats returns a snapshot of the current statistics
func (h *ConsoleHandler) Stats() Snapshot {
	return h.stats.GetSnapshot()
}
