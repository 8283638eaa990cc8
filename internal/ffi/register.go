//go:build darwin || freebsd || linux || windows

package ffi

import (
	"fmt"

	"github.com/ebitengine/purego"
)

// registerFunc points fnPtr at addr. purego panics on signatures it cannot
// marshal; that is reported as an error instead.
func registerFunc(fnPtr any, addr uintptr) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("bind function: %v", r)
		}
	}()
	purego.RegisterFunc(fnPtr, addr)
	return nil
}
