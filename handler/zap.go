package handler

import (
	"time"

	"github.com/philipp01105/logfan/core"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ZapListener writes events to a zap logger. The tag becomes a "tag" field,
// core.Field params become typed zap fields and every other param is
// collected under "params".
type ZapListener struct {
	l *zap.Logger
}

// NewZapListener creates a listener for l. A nil logger discards everything.
func NewZapListener(l *zap.Logger) *ZapListener {
	if l == nil {
		l = zap.NewNop()
	}
	return &ZapListener{l: l}
}

// OnEvent implements core.Listener.
func (z *ZapListener) OnEvent(ev *core.Event) error {
	ce := z.l.Check(ZapLevel(ev.Level), ev.Message)
	if ce == nil {
		return nil
	}
	ce.Time = ev.Time()

	fields := make([]zap.Field, 0, 1+len(ev.Params))
	fields = append(fields, zap.String("tag", ev.Tag))
	var rest []any
	for _, p := range ev.Params {
		if f, ok := p.(core.Field); ok {
			fields = append(fields, toZapField(f))
			continue
		}
		rest = append(rest, p)
	}
	if len(rest) > 0 {
		fields = append(fields, zap.Any("params", rest))
	}
	ce.Write(fields...)
	return nil
}

// ZapLevel maps a level onto zap's scale. Fatal events are written at
// error level so a zap logger never exits the process.
func ZapLevel(l core.Level) zapcore.Level {
	switch {
	case l >= core.ErrorLevel:
		return zapcore.ErrorLevel
	case l >= core.WarnLevel:
		return zapcore.WarnLevel
	case l >= core.InfoLevel:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

func toZapField(f core.Field) zap.Field {
	switch f.Type {
	case core.StringType, core.ErrorType:
		return zap.String(f.Key, f.Str)
	case core.IntType, core.Int64Type:
		return zap.Int64(f.Key, f.Int64)
	case core.Float64Type:
		return zap.Float64(f.Key, f.Float64)
	case core.BoolType:
		return zap.Bool(f.Key, f.Int64 == 1)
	case core.TimeType:
		return zap.Time(f.Key, time.Unix(0, f.Int64))
	case core.DurationType:
		return zap.Duration(f.Key, time.Duration(f.Int64))
	default:
		return zap.Any(f.Key, f.Any)
	}
}
