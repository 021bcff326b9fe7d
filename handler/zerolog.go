package handler

import (
	"time"

	"github.com/philipp01105/logfan/core"
	"github.com/rs/zerolog"
)

// ZerologListener writes events to a zerolog logger.
type ZerologListener struct {
	l zerolog.Logger
}

// NewZerologListener creates a listener for l.
func NewZerologListener(l zerolog.Logger) *ZerologListener {
	return &ZerologListener{l: l}
}

// OnEvent implements core.Listener.
func (z *ZerologListener) OnEvent(ev *core.Event) error {
	e := z.l.WithLevel(ZerologLevel(ev.Level))
	if e == nil {
		return nil
	}
	e = e.Time(zerolog.TimestampFieldName, ev.Time()).Str("tag", ev.Tag)
	var rest []any
	for _, p := range ev.Params {
		f, ok := p.(core.Field)
		if !ok {
			rest = append(rest, p)
			continue
		}
		switch f.Type {
		case core.StringType, core.ErrorType:
			e = e.Str(f.Key, f.Str)
		case core.IntType, core.Int64Type:
			e = e.Int64(f.Key, f.Int64)
		case core.Float64Type:
			e = e.Float64(f.Key, f.Float64)
		case core.BoolType:
			e = e.Bool(f.Key, f.Int64 == 1)
		case core.TimeType:
			e = e.Time(f.Key, time.Unix(0, f.Int64))
		case core.DurationType:
			e = e.Dur(f.Key, time.Duration(f.Int64))
		default:
			e = e.Interface(f.Key, f.Any)
		}
	}
	if len(rest) > 0 {
		e = e.Interface("params", rest)
	}
	e.Msg(ev.Message)
	return nil
}

// ZerologLevel maps a level onto zerolog's scale. WithLevel never exits,
// so fatal events keep their severity.
func ZerologLevel(l core.Level) zerolog.Level {
	switch {
	case l >= core.FatalLevel:
		return zerolog.FatalLevel
	case l >= core.ErrorLevel:
		return zerolog.ErrorLevel
	case l >= core.WarnLevel:
		return zerolog.WarnLevel
	case l >= core.InfoLevel:
		return zerolog.InfoLevel
	case l >= core.DebugLevel:
		return zerolog.DebugLevel
	default:
		return zerolog.TraceLevel
	}
}
