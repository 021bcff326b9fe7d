package core

import (
	"time"

	"github.com/trickstertwo/xclock"
)

// Event is a single log occurrence travelling through the routing graph.
//
// Events handed out by a Buffer are recycled: a later emission on the same
// buffer may overwrite the record in place. Listeners that keep an event
// beyond the call must Clone it.
type Event struct {
	Level     Level
	Tag       string
	Message   string
	Params    []any
	Timestamp int64 // unix milliseconds
}

// EventCreator builds a new event. Buffers use it to fill their ring.
type EventCreator func(level Level, tag, message string, params []any) *Event

// NewEvent creates an event stamped with the current clock time.
func NewEvent(level Level, tag, message string, params []any) *Event {
	e := &Event{}
	e.Initialize(level, tag, message, params, xclock.Now().UnixMilli())
	return e
}

// Initialize overwrites every field of the event in place.
func (e *Event) Initialize(level Level, tag, message string, params []any, timestamp int64) {
	e.Level = level
	e.Tag = tag
	e.Message = message
	e.Params = params
	e.Timestamp = timestamp
}

// Clone returns an independent copy, including the params slice.
func (e *Event) Clone() *Event {
	c := *e
	if e.Params != nil {
		c.Params = make([]any, len(e.Params))
		copy(c.Params, e.Params)
	}
	return &c
}

// Time returns the timestamp as a time.Time in UTC.
func (e *Event) Time() time.Time {
	return time.UnixMilli(e.Timestamp).UTC()
}
