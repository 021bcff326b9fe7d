// Package filter builds core.Filter predicates for transport guards.
//
// Compile turns a CEL expression into a filter. The expression sees these
// variables:
//
//	level      int     the event level, e.g. 600 for ERROR
//	level_name string  the level name, e.g. "ERROR"
//	tag        string
//	message    string
//	ts_ms      int     event timestamp in Unix milliseconds
//	now_ms     int     evaluation time in Unix milliseconds
//	params     list    the params in their JSON form
//
// A core.Field param appears in params as a single-key map, so
// params.exists(p, has(p.ms) && p.ms > 500) matches Int("ms", 812).
//
// The remaining helpers combine plain Go predicates.
package filter

import (
	"encoding/json"
	"slices"
	"strings"

	"github.com/google/cel-go/cel"
	"github.com/philipp01105/logfan/core"
	"github.com/philipp01105/logfan/formatter"
	"github.com/pkg/errors"
	"github.com/trickstertwo/xclock"
)

// Compile compiles expr into a filter. An empty expression accepts
// everything. The expression must evaluate to a bool; an evaluation error
// rejects the event.
func Compile(expr string) (core.Filter, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return core.AcceptEverything, nil
	}
	env, err := cel.NewEnv(
		cel.Variable("level", cel.IntType),
		cel.Variable("level_name", cel.StringType),
		cel.Variable("tag", cel.StringType),
		cel.Variable("message", cel.StringType),
		cel.Variable("ts_ms", cel.IntType),
		cel.Variable("now_ms", cel.IntType),
		cel.Variable("params", cel.ListType(cel.DynType)),
	)
	if err != nil {
		return nil, errors.Wrap(err, "filter: environment")
	}
	ast, iss := env.Parse(expr)
	if iss != nil && iss.Err() != nil {
		return nil, errors.Wrapf(iss.Err(), "filter: parse %q", expr)
	}
	checked, iss2 := env.Check(ast)
	if iss2 != nil && iss2.Err() != nil {
		return nil, errors.Wrapf(iss2.Err(), "filter: check %q", expr)
	}
	if !checked.OutputType().IsExactType(cel.BoolType) {
		return nil, errors.Errorf("filter: %q yields %s, want bool", expr, checked.OutputType())
	}
	prog, err := env.Program(checked)
	if err != nil {
		return nil, errors.Wrapf(err, "filter: program %q", expr)
	}

	return func(ev *core.Event) bool {
		if ev == nil {
			return false
		}
		out, _, err := prog.Eval(map[string]any{
			"level":      int64(ev.Level),
			"level_name": core.LevelNames().Get(ev.Level),
			"tag":        ev.Tag,
			"message":    ev.Message,
			"ts_ms":      ev.Timestamp,
			"now_ms":     xclock.Now().UnixMilli(),
			// resolved only when the expression reads params
			"params": func() any { return jsonParams(ev.Params) },
		})
		if err != nil {
			return false
		}
		b, ok := out.Value().(bool)
		return ok && b
	}, nil
}

// MustCompile is like Compile but panics if the expression is invalid.
func MustCompile(expr string) core.Filter {
	f, err := Compile(expr)
	if err != nil {
		panic(err)
	}
	return f
}

// jsonParams converts params to the values encoding/json would decode from
// their serialized form. Params that do not round-trip become strings.
func jsonParams(params []any) []any {
	out := make([]any, len(params))
	for i, p := range params {
		s := formatter.StringifySafe(p)
		var v any
		if err := json.Unmarshal([]byte(s), &v); err != nil {
			v = s
		}
		out[i] = v
	}
	return out
}

// MinLevel accepts events at or above level.
func MinLevel(level core.Level) core.Filter {
	return func(ev *core.Event) bool {
		return ev != nil && ev.Level >= level
	}
}

// Tags accepts events whose tag is one of tags.
func Tags(tags ...string) core.Filter {
	set := slices.Clone(tags)
	return func(ev *core.Event) bool {
		return ev != nil && slices.Contains(set, ev.Tag)
	}
}

// And accepts events every filter accepts. Nil filters are skipped; no
// filters accept everything.
func And(filters ...core.Filter) core.Filter {
	fs := compact(filters)
	return func(ev *core.Event) bool {
		for _, f := range fs {
			if !f(ev) {
				return false
			}
		}
		return true
	}
}

// Or accepts events any filter accepts. Nil filters are skipped; no filters
// reject everything.
func Or(filters ...core.Filter) core.Filter {
	fs := compact(filters)
	return func(ev *core.Event) bool {
		for _, f := range fs {
			if f(ev) {
				return true
			}
		}
		return false
	}
}

// Not inverts f. A nil f is treated as the tautology, so Not(nil) rejects
// everything.
func Not(f core.Filter) core.Filter {
	if f == nil {
		f = core.AcceptEverything
	}
	return func(ev *core.Event) bool {
		return !f(ev)
	}
}

func compact(filters []core.Filter) []core.Filter {
	out := make([]core.Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			out = append(out, f)
		}
	}
	return out
}
