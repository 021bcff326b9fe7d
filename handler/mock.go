package handler

// MockConsole is a FullConsole that discards everything. Use it to silence
// a console mirror.
type MockConsole struct{}

func (MockConsole) Log(string, ...any)     {}
func (MockConsole) Warn(string, ...any)    {}
func (MockConsole) Error(string, ...any)   {}
func (MockConsole) Verbose(string, ...any) {}
func (MockConsole) Trace(string, ...any)   {}
func (MockConsole) Debug(string, ...any)   {}
func (MockConsole) Info(string, ...any)    {}
func (MockConsole) Fatal(string, ...any)   {}
