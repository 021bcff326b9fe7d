// Package benchmark holds cross-package benchmarks for logfan and the
// loggers it is commonly compared with.
package benchmark

import "github.com/philipp01105/logfan/core"

// noopListener touches the event and discards it, so benchmarks measure the
// routing path without formatting.
type noopListener struct{}

func (noopListener) OnEvent(ev *core.Event) error {
	_ = len(ev.Message)
	return nil
}
