//go:build darwin || freebsd || linux

package ffi

import (
	"fmt"

	"github.com/ebitengine/purego"
)

type sharedLibrary struct {
	handle uintptr
}

// Open dlopens path with RTLD_NOW so that relocation problems surface here
// rather than on first call.
func (l *NativeLoader) Open(path string) (Module, error) {
	h, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		return nil, err
	}
	if h == 0 {
		return nil, fmt.Errorf("dlopen returned a nil handle for %s", path)
	}
	return &sharedLibrary{handle: h}, nil
}

func (so *sharedLibrary) Bind(symbol string, fnPtr any) error {
	addr, err := purego.Dlsym(so.handle, symbol)
	if err != nil {
		return err
	}
	if addr == 0 {
		return fmt.Errorf("dlsym returned a nil address for %s", symbol)
	}
	return registerFunc(fnPtr, addr)
}

func (so *sharedLibrary) Close() error {
	return purego.Dlclose(so.handle)
}
