package mocks

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/mcoot/jogador/internal/ffi"
)

var ErrSymbolNotFound = errors.New("symbol not found")

// MockLoader is an in-process Loader for testing. Modules are keyed by the
// absolute path the adapter resolves.
type MockLoader struct {
	Modules map[string]*MockModule
	// OpenErr, if set, is returned from every Open
	OpenErr error
	// Opened records every path passed to Open
	Opened []string
}

// Ensure MockLoader implements Loader
var _ ffi.Loader = (*MockLoader)(nil)

// NewMockLoader creates an empty MockLoader
func NewMockLoader() *MockLoader {
	return &MockLoader{Modules: make(map[string]*MockModule)}
}

// Add registers a module at path and returns it
func (l *MockLoader) Add(path string, exports ...string) *MockModule {
	m := NewMockModule(exports...)
	l.Modules[path] = m
	return m
}

// Open returns the module registered at path
func (l *MockLoader) Open(path string) (ffi.Module, error) {
	l.Opened = append(l.Opened, path)
	if l.OpenErr != nil {
		return nil, l.OpenErr
	}
	m, ok := l.Modules[path]
	if !ok {
		return nil, fmt.Errorf("no mock module at %s", path)
	}
	m.Closed = false
	return m, nil
}

// MockModule records every C string passed to its exported functions.
type MockModule struct {
	Exports map[string]bool
	// Calls maps a symbol to the raw buffers it received, terminator included
	Calls   map[string][][]byte
	Flushes int
	Closed  bool
}

// Ensure MockModule implements Module
var _ ffi.Module = (*MockModule)(nil)

// NewMockModule creates a module exporting the given symbols
func NewMockModule(exports ...string) *MockModule {
	m := &MockModule{
		Exports: make(map[string]bool),
		Calls:   make(map[string][][]byte),
	}
	for _, e := range exports {
		m.Exports[e] = true
	}
	return m
}

// Bind supports the func(*byte) and func(uintptr) int32 signatures
func (m *MockModule) Bind(symbol string, fnPtr any) error {
	if !m.Exports[symbol] {
		return fmt.Errorf("%w: %s", ErrSymbolNotFound, symbol)
	}
	switch fn := fnPtr.(type) {
	case *func(*byte):
		*fn = func(p *byte) {
			m.Calls[symbol] = append(m.Calls[symbol], cString(p))
		}
	case *func(uintptr) int32:
		*fn = func(uintptr) int32 {
			m.Flushes++
			return 0
		}
	default:
		return fmt.Errorf("unsupported signature %T for %s", fnPtr, symbol)
	}
	return nil
}

// Close marks the module closed
func (m *MockModule) Close() error {
	m.Closed = true
	return nil
}

// CallCount returns how many times symbol was called
func (m *MockModule) CallCount(symbol string) int {
	return len(m.Calls[symbol])
}

// cString copies a NUL-terminated buffer, terminator included.
func cString(p *byte) []byte {
	if p == nil {
		return nil
	}
	var out []byte
	for ptr := unsafe.Pointer(p); ; ptr = unsafe.Add(ptr, 1) {
		b := *(*byte)(ptr)
		out = append(out, b)
		if b == 0 {
			return out
		}
	}
}
