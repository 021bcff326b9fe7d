package logger

import (
	"fmt"
	"time"

	"github.com/philipp01105/logfan/core"
)

// Field helpers build typed params. They render as {"key":value} in the
// default format and map to native fields in the zap, zerolog, logrus and
// slog listeners.

// String creates a string field
func String(key, val string) core.Field {
	return core.Field{Key: key, Type: core.StringType, Str: val}
}

// Int creates an int field
func Int(key string, val int) core.Field {
	return core.Field{Key: key, Type: core.IntType, Int64: int64(val)}
}

// Int64 creates an int64 field
func Int64(key string, val int64) core.Field {
	return core.Field{Key: key, Type: core.Int64Type, Int64: val}
}

// Float64 creates a float64 field
func Float64(key string, val float64) core.Field {
	return core.Field{Key: key, Type: core.Float64Type, Float64: val}
}

// Bool creates a bool field
func Bool(key string, val bool) core.Field {
	var n int64
	if val {
		n = 1
	}
	return core.Field{Key: key, Type: core.BoolType, Int64: n}
}

// Time creates a time field
func Time(key string, val time.Time) core.Field {
	return core.Field{Key: key, Type: core.TimeType, Int64: val.UnixNano()}
}

// Duration creates a duration field
func Duration(key string, val time.Duration) core.Field {
	return core.Field{Key: key, Type: core.DurationType, Int64: int64(val)}
}

// Err creates an error field named "error"
func Err(err error) core.Field {
	return NamedErr("error", err)
}

// NamedErr creates an error field under key. A nil error yields an empty
// message.
func NamedErr(key string, err error) core.Field {
	f := core.Field{Key: key, Type: core.ErrorType}
	if err != nil {
		f.Str = err.Error()
	}
	return f
}

// Stringer creates a string field from val.String()
func Stringer(key string, val fmt.Stringer) core.Field {
	if val == nil {
		return String(key, "<nil>")
	}
	return String(key, val.String())
}

// Any creates a field with any value
func Any(key string, val any) core.Field {
	return core.Field{Key: key, Type: core.AnyType, Any: val}
}
