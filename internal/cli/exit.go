package cli

import (
	"errors"

	"github.com/mcoot/jogador/internal/ffi"
)

// Process exit codes
const (
	ExitOK       = 0
	ExitError    = 1
	ExitLoad     = 2
	ExitSymbol   = 3
	ExitEncoding = 4
)

// ExitCode maps an error to the process exit code
func ExitCode(err error) int {
	var (
		loadErr *ffi.LoadError
		symErr  *ffi.SymbolError
		encErr  *ffi.EncodingError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &loadErr):
		return ExitLoad
	case errors.As(err, &symErr):
		return ExitSymbol
	case errors.As(err, &encErr):
		return ExitEncoding
	}
	return ExitError
}

// errorKind names the error class in JSON error output
func errorKind(err error) string {
	switch ExitCode(err) {
	case ExitLoad:
		return "load"
	case ExitSymbol:
		return "symbol"
	case ExitEncoding:
		return "encoding"
	}
	return "error"
}
