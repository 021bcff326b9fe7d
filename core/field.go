package core

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/joeycumines/go-utilpkg/jsonenc"
)

// FieldType represents the type of a field value
type FieldType uint8

const (
	StringType FieldType = iota
	IntType
	Int64Type
	Float64Type
	BoolType
	TimeType
	DurationType
	ErrorType
	AnyType
)

// Field is a typed key-value pair that can be passed as an event param.
// Numeric kinds are stored inline so building a Field does not allocate.
type Field struct {
	Key     string
	Type    FieldType
	Int64   int64
	Float64 float64
	Str     string
	Any     any
}

// StringValue returns the string representation of a field's value
func (f Field) StringValue() string {
	switch f.Type {
	case StringType:
		return f.Str
	case IntType, Int64Type:
		return strconv.FormatInt(f.Int64, 10)
	case Float64Type:
		return strconv.FormatFloat(f.Float64, 'f', -1, 64)
	case BoolType:
		return strconv.FormatBool(f.Int64 == 1)
	case TimeType:
		return time.Unix(0, f.Int64).UTC().Format(time.RFC3339Nano)
	case DurationType:
		return time.Duration(f.Int64).String()
	case ErrorType:
		return f.Str
	case AnyType:
		return fmt.Sprintf("%v", f.Any)
	default:
		return ""
	}
}

// Value returns the field's value as a plain Go value.
func (f Field) Value() any {
	switch f.Type {
	case StringType, ErrorType:
		return f.Str
	case IntType, Int64Type:
		return f.Int64
	case Float64Type:
		return f.Float64
	case BoolType:
		return f.Int64 == 1
	case TimeType:
		return time.Unix(0, f.Int64).UTC()
	case DurationType:
		return time.Duration(f.Int64)
	default:
		return f.Any
	}
}

// String renders the field as key=value.
func (f Field) String() string {
	return f.Key + "=" + f.StringValue()
}

// MarshalJSON encodes the field as a single-key object, {"key":value}.
func (f Field) MarshalJSON() ([]byte, error) {
	return f.AppendJSON(make([]byte, 0, 32+len(f.Key)+len(f.Str)))
}

// AppendJSON appends the {"key":value} encoding of the field to dst.
func (f Field) AppendJSON(dst []byte) ([]byte, error) {
	dst = append(dst, '{')
	dst = jsonenc.AppendString(dst, f.Key)
	dst = append(dst, ':')
	dst, err := f.AppendJSONValue(dst)
	if err != nil {
		return nil, err
	}
	return append(dst, '}'), nil
}

// AppendJSONValue appends only the JSON encoding of the field's value to dst.
func (f Field) AppendJSONValue(dst []byte) ([]byte, error) {
	switch f.Type {
	case StringType, ErrorType:
		return jsonenc.AppendString(dst, f.Str), nil
	case IntType, Int64Type, DurationType:
		return strconv.AppendInt(dst, f.Int64, 10), nil
	case Float64Type:
		return jsonenc.AppendFloat64(dst, f.Float64), nil
	case BoolType:
		return strconv.AppendBool(dst, f.Int64 == 1), nil
	case TimeType:
		return jsonenc.AppendString(dst, time.Unix(0, f.Int64).UTC().Format(time.RFC3339Nano)), nil
	default:
		b, err := json.Marshal(f.Any)
		if err != nil {
			return nil, err
		}
		return append(dst, b...), nil
	}
}
