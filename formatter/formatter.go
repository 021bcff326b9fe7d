package formatter

import (
	"bytes"
	"io"
	"sync"

	"github.com/philipp01105/logfan/core"
)

const (
	// DefaultSeparator is placed before every stringified param.
	DefaultSeparator = " :: "
	// DefaultMaxLength is the rune count past which a stringified param is truncated.
	DefaultMaxLength = 250
	// ISO8601Millis is the timestamp layout of the default format, in UTC.
	ISO8601Millis = "2006-01-02T15:04:05.000Z"
)

// Formatter defines the interface for event formatters
type Formatter interface {
	// Format formats an event into bytes
	Format(ev *core.Event) ([]byte, error)
}

// WriterFormatter is an optional interface that formatters can implement
// to write directly to a writer without intermediate byte slice allocation.
type WriterFormatter interface {
	// FormatTo formats an event and writes it directly to the writer
	FormatTo(ev *core.Event, w io.Writer) error
}

// BufferFormatter is an optional interface that formatters can implement
// to format directly into a caller-provided buffer.
type BufferFormatter interface {
	// FormatEvent formats an event into the given buffer.
	FormatEvent(ev *core.Event, buf *bytes.Buffer)
}

// Config holds common formatter configuration. Zero fields take defaults.
type Config struct {
	// Separator precedes every param (default: " :: ")
	Separator string
	// MaxLength truncates each stringified param (default: 250, negative disables)
	MaxLength int
	// LevelNames resolves level display names (default: core.LevelNames())
	LevelNames *core.LevelNameMap
	// TimestampFormat is the UTC time layout (default: ISO8601Millis)
	TimestampFormat string
}

// withDefaults returns a copy of c with zero fields filled in.
func (c Config) withDefaults() Config {
	if c.Separator == "" {
		c.Separator = DefaultSeparator
	}
	if c.MaxLength == 0 {
		c.MaxLength = DefaultMaxLength
	}
	if c.LevelNames == nil {
		c.LevelNames = core.LevelNames()
	}
	if c.TimestampFormat == "" {
		c.TimestampFormat = ISO8601Millis
	}
	return c
}

var (
	sharedMu     sync.RWMutex
	sharedConfig = Config{}.withDefaults()
)

// Shared returns the process-wide configuration used by Stringify and the
// console mirror.
func Shared() Config {
	sharedMu.RLock()
	defer sharedMu.RUnlock()
	return sharedConfig
}

// SetShared replaces the process-wide configuration. Zero fields take defaults.
func SetShared(cfg Config) {
	cfg = cfg.withDefaults()
	sharedMu.Lock()
	sharedConfig = cfg
	sharedMu.Unlock()
}

// ResetShared restores the default process-wide configuration.
func ResetShared() {
	SetShared(Config{})
}

// bufferPool is a pool of bytes.Buffer to reduce allocations
var bufferPool = &sync.Pool{
	New: func() any {
		b := new(bytes.Buffer)
		b.Grow(256)
		return b
	},
}

func getBuffer() *bytes.Buffer {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	return buf
}

func putBuffer(buf *bytes.Buffer) {
	if buf.Cap() > 64*1024 { // Don't keep very large buffers
		return
	}
	bufferPool.Put(buf)
}
