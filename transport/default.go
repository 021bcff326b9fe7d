package transport

import "sync"

var (
	primaryOnce sync.Once
	primary     *Transport
)

// Primary returns the process-wide transport, creating it on first use with
// the console mirror enabled. It is never destroyed.
func Primary() *Transport {
	primaryOnce.Do(func() {
		primary = New(Config{Name: "primary", DefaultBroadcast: true})
		primary.primary = true
	})
	return primary
}
