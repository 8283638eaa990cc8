package ffi

// Loader opens native modules.
type Loader interface {
	Open(path string) (Module, error)
}

// Module is an opened native module.
type Module interface {
	// Bind resolves symbol and points fnPtr, a pointer to a Go func value,
	// at it. It fails if the symbol does not exist.
	Bind(symbol string, fnPtr any) error
	Close() error
}

// NativeLoader opens shared libraries with the platform's dynamic loader.
type NativeLoader struct{}

// NewNativeLoader creates a NativeLoader
func NewNativeLoader() *NativeLoader {
	return &NativeLoader{}
}

// Ensure NativeLoader implements Loader
var _ Loader = (*NativeLoader)(nil)
