package ffi

import "fmt"

// LoadError is returned when the native module cannot be found or opened.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load native module %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// SymbolError is returned when an expected symbol is absent from a loaded module.
type SymbolError struct {
	Path   string
	Symbol string
	Err    error
}

func (e *SymbolError) Error() string {
	return fmt.Sprintf("resolve symbol %s in %s: %v", e.Symbol, e.Path, e.Err)
}

func (e *SymbolError) Unwrap() error { return e.Err }

// EncodingError is returned when a name cannot be represented as a C string
// in the requested encoding.
type EncodingError struct {
	Name     string
	Encoding Encoding
	Err      error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode name %q as %s: %v", e.Name, e.Encoding, e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }
