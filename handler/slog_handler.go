package handler

import (
	"context"
	"log/slog"
	"time"

	"github.com/philipp01105/logfan/core"
)

// DefaultSlogTag is the tag given to records arriving through SlogHandler.
const DefaultSlogTag = "slog"

// SlogHandler implements slog.Handler on top of an Emitter, so code written
// against log/slog feeds the routing graph. Attributes become core.Field
// params.
type SlogHandler struct {
	emitter Emitter
	tag     string
	level   core.Level
	attrs   []core.Field
	group   string
}

// NewSlogHandler creates a slog.Handler emitting with the given tag (default
// "slog") and minimum level.
func NewSlogHandler(e Emitter, tag string, level core.Level) *SlogHandler {
	if tag == "" {
		tag = DefaultSlogTag
	}
	return &SlogHandler{
		emitter: e,
		tag:     tag,
		level:   level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (s *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return SlogLevelToCore(level) >= s.level
}

// Handle converts the record's attributes to params and emits it.
func (s *SlogHandler) Handle(_ context.Context, record slog.Record) error {
	params := make([]any, 0, len(s.attrs)+record.NumAttrs())
	for _, f := range s.attrs {
		params = append(params, f)
	}
	record.Attrs(func(a slog.Attr) bool {
		params = appendSlogAttr(params, s.group, a)
		return true
	})
	return s.emitter.Emit(SlogLevelToCore(record.Level), s.tag, record.Message, params)
}

// WithAttrs returns a new SlogHandler with additional attributes.
func (s *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	params := make([]any, 0, len(attrs))
	for _, a := range attrs {
		params = appendSlogAttr(params, s.group, a)
	}
	newAttrs := make([]core.Field, len(s.attrs), len(s.attrs)+len(params))
	copy(newAttrs, s.attrs)
	for _, p := range params {
		newAttrs = append(newAttrs, p.(core.Field))
	}
	return &SlogHandler{
		emitter: s.emitter,
		tag:     s.tag,
		level:   s.level,
		attrs:   newAttrs,
		group:   s.group,
	}
}

// WithGroup returns a new SlogHandler with the given group name.
func (s *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return s
	}
	newGroup := name
	if s.group != "" {
		newGroup = s.group + "." + name
	}
	return &SlogHandler{
		emitter: s.emitter,
		tag:     s.tag,
		level:   s.level,
		attrs:   s.attrs,
		group:   newGroup,
	}
}

// SlogLevelToCore converts a slog.Level to a core.Level.
func SlogLevelToCore(level slog.Level) core.Level {
	switch {
	case level >= slog.LevelError:
		return core.ErrorLevel
	case level >= slog.LevelWarn:
		return core.WarnLevel
	case level >= slog.LevelInfo:
		return core.InfoLevel
	case level >= slog.LevelDebug:
		return core.DebugLevel
	default:
		return core.TraceLevel
	}
}

// CoreLevelToSlog converts a core.Level to a slog.Level.
func CoreLevelToSlog(level core.Level) slog.Level {
	switch {
	case level >= core.ErrorLevel:
		return slog.LevelError
	case level >= core.WarnLevel:
		return slog.LevelWarn
	case level >= core.InfoLevel:
		return slog.LevelInfo
	default:
		return slog.LevelDebug
	}
}

// appendSlogAttr flattens a, including nested groups, into core.Field params.
func appendSlogAttr(params []any, group string, a slog.Attr) []any {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return params
	}
	key := a.Key
	if group != "" {
		key = group + "." + a.Key
	}

	switch a.Value.Kind() {
	case slog.KindString:
		return append(params, core.Field{Key: key, Type: core.StringType, Str: a.Value.String()})
	case slog.KindInt64:
		return append(params, core.Field{Key: key, Type: core.Int64Type, Int64: a.Value.Int64()})
	case slog.KindUint64:
		return append(params, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Uint64()})
	case slog.KindFloat64:
		return append(params, core.Field{Key: key, Type: core.Float64Type, Float64: a.Value.Float64()})
	case slog.KindBool:
		val := int64(0)
		if a.Value.Bool() {
			val = 1
		}
		return append(params, core.Field{Key: key, Type: core.BoolType, Int64: val})
	case slog.KindTime:
		return append(params, core.Field{Key: key, Type: core.TimeType, Int64: a.Value.Time().UnixNano()})
	case slog.KindDuration:
		return append(params, core.Field{Key: key, Type: core.DurationType, Int64: int64(a.Value.Duration())})
	case slog.KindGroup:
		prefix := key
		if a.Key == "" {
			prefix = group
		}
		for _, ga := range a.Value.Group() {
			params = appendSlogAttr(params, prefix, ga)
		}
		return params
	default:
		if err, ok := a.Value.Any().(error); ok {
			return append(params, core.Field{Key: key, Type: core.ErrorType, Str: err.Error()})
		}
		return append(params, core.Field{Key: key, Type: core.AnyType, Any: a.Value.Any()})
	}
}

// SlogListener writes events to a slog.Handler.
type SlogListener struct {
	h slog.Handler
}

// NewSlogListener creates a listener for h. A nil handler uses the handler
// of slog.Default().
func NewSlogListener(h slog.Handler) *SlogListener {
	if h == nil {
		h = slog.Default().Handler()
	}
	return &SlogListener{h: h}
}

// OnEvent implements core.Listener.
func (s *SlogListener) OnEvent(ev *core.Event) error {
	ctx := context.Background()
	lvl := CoreLevelToSlog(ev.Level)
	if !s.h.Enabled(ctx, lvl) {
		return nil
	}
	r := slog.NewRecord(ev.Time(), lvl, ev.Message, 0)
	r.AddAttrs(slog.String("tag", ev.Tag))
	var rest []any
	for _, p := range ev.Params {
		f, ok := p.(core.Field)
		if !ok {
			rest = append(rest, p)
			continue
		}
		switch f.Type {
		case core.StringType, core.ErrorType:
			r.AddAttrs(slog.String(f.Key, f.Str))
		case core.IntType, core.Int64Type:
			r.AddAttrs(slog.Int64(f.Key, f.Int64))
		case core.Float64Type:
			r.AddAttrs(slog.Float64(f.Key, f.Float64))
		case core.BoolType:
			r.AddAttrs(slog.Bool(f.Key, f.Int64 == 1))
		case core.TimeType:
			r.AddAttrs(slog.Time(f.Key, time.Unix(0, f.Int64)))
		case core.DurationType:
			r.AddAttrs(slog.Duration(f.Key, time.Duration(f.Int64)))
		default:
			r.AddAttrs(slog.Any(f.Key, f.Any))
		}
	}
	if len(rest) > 0 {
		r.AddAttrs(slog.Any("params", rest))
	}
	return s.h.Handle(ctx, r)
}
