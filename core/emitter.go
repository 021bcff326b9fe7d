package core

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/multierr"
)

// Listener receives values broadcast by an Emitter.
type Listener[T any] interface {
	OnEvent(v T) error
}

type funcListener[T any] struct {
	fn func(T) error
}

func (l *funcListener[T]) OnEvent(v T) error {
	return l.fn(v)
}

// ListenerFunc wraps fn in a listener handle. Every call returns a distinct
// handle; keep it to remove the listener later. A nil fn yields nil.
func ListenerFunc[T any](fn func(T) error) Listener[T] {
	if fn == nil {
		return nil
	}
	return &funcListener[T]{fn: fn}
}

// ListenerPanic is the error recorded when a listener panics during a broadcast.
type ListenerPanic struct {
	Value any
}

func (p *ListenerPanic) Error() string {
	return fmt.Sprintf("listener panic: %v", p.Value)
}

// Unwrap exposes the panic value when it is an error.
func (p *ListenerPanic) Unwrap() error {
	err, _ := p.Value.(error)
	return err
}

// Emitter is a multicast registry of listeners.
//
// Writers copy the listener slice and swap it in; Broadcast iterates the
// snapshot current when it started. A listener added during a broadcast is
// first called on the next one, and a listener removed during a broadcast
// still receives the current one.
type Emitter[T any] struct {
	mu        sync.Mutex
	listeners atomic.Pointer[[]Listener[T]]
}

func (e *Emitter[T]) load() []Listener[T] {
	if p := e.listeners.Load(); p != nil {
		return *p
	}
	return nil
}

func sameListener[T any](a, b Listener[T]) bool {
	ta := reflect.TypeOf(a)
	if ta != reflect.TypeOf(b) || !ta.Comparable() {
		return false
	}
	return a == b
}

func indexOf[T any](list []Listener[T], l Listener[T]) int {
	for i, cur := range list {
		if sameListener(cur, l) {
			return i
		}
	}
	return -1
}

func isNil[T any](l Listener[T]) bool {
	if l == nil {
		return true
	}
	v := reflect.ValueOf(l)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Add registers l. Adding a nil listener or one already present is a no-op.
// Listeners compare by identity, so their dynamic type must be comparable:
// adding a value of a non-comparable type (a struct holding a slice, say)
// is also a no-op. Register a pointer to it instead.
func (e *Emitter[T]) Add(l Listener[T]) {
	if isNil(l) || !reflect.TypeOf(l).Comparable() {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.load()
	if indexOf(cur, l) >= 0 {
		return
	}
	next := make([]Listener[T], len(cur), len(cur)+1)
	copy(next, cur)
	next = append(next, l)
	e.listeners.Store(&next)
}

// Remove unregisters l. Removing an absent listener is a no-op.
func (e *Emitter[T]) Remove(l Listener[T]) {
	if isNil(l) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	cur := e.load()
	i := indexOf(cur, l)
	if i < 0 {
		return
	}
	next := make([]Listener[T], 0, len(cur)-1)
	next = append(next, cur[:i]...)
	next = append(next, cur[i+1:]...)
	e.listeners.Store(&next)
}

// Has reports whether l is registered.
func (e *Emitter[T]) Has(l Listener[T]) bool {
	if isNil(l) {
		return false
	}
	return indexOf(e.load(), l) >= 0
}

// Count returns the number of registered listeners.
func (e *Emitter[T]) Count() int {
	return len(e.load())
}

// Clear removes every listener.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	e.listeners.Store(nil)
	e.mu.Unlock()
}

// Broadcast calls every listener with v in registration order. A failing or
// panicking listener does not stop the others; their errors are combined
// into the returned error.
func (e *Emitter[T]) Broadcast(v T) error {
	var errs error
	for _, l := range e.load() {
		if err := notify(l, v); err != nil {
			errs = multierr.Append(errs, err)
		}
	}
	return errs
}

func notify[T any](l Listener[T], v T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &ListenerPanic{Value: r}
		}
	}()
	return l.OnEvent(v)
}
