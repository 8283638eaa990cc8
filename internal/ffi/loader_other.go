//go:build !(darwin || freebsd || linux || windows)

package ffi

import (
	"fmt"
	"runtime"
)

// Open always fails: there is no dynamic loader binding for this platform.
func (l *NativeLoader) Open(path string) (Module, error) {
	return nil, fmt.Errorf("dynamic loading is not supported on %s", runtime.GOOS)
}
