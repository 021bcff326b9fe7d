package handler

import (
	"github.com/philipp01105/logfan/core"
	"github.com/sirupsen/logrus"
)

// LogrusListener writes events to a logrus logger.
type LogrusListener struct {
	l *logrus.Logger
}

// NewLogrusListener creates a listener for l. A nil logger uses
// logrus.StandardLogger().
func NewLogrusListener(l *logrus.Logger) *LogrusListener {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &LogrusListener{l: l}
}

// OnEvent implements core.Listener.
func (r *LogrusListener) OnEvent(ev *core.Event) error {
	lvl := LogrusLevel(ev.Level)
	if !r.l.IsLevelEnabled(lvl) {
		return nil
	}
	fields := logrus.Fields{"tag": ev.Tag}
	var rest []any
	for _, p := range ev.Params {
		if f, ok := p.(core.Field); ok {
			fields[f.Key] = f.Value()
			continue
		}
		rest = append(rest, p)
	}
	if len(rest) > 0 {
		fields["params"] = rest
	}
	// Entry.Log does not exit or panic for fatal levels.
	r.l.WithTime(ev.Time()).WithFields(fields).Log(lvl, ev.Message)
	return nil
}

// LogrusLevel maps a level onto logrus' scale.
func LogrusLevel(l core.Level) logrus.Level {
	switch {
	case l >= core.FatalLevel:
		return logrus.FatalLevel
	case l >= core.ErrorLevel:
		return logrus.ErrorLevel
	case l >= core.WarnLevel:
		return logrus.WarnLevel
	case l >= core.InfoLevel:
		return logrus.InfoLevel
	case l >= core.DebugLevel:
		return logrus.DebugLevel
	default:
		return logrus.TraceLevel
	}
}
