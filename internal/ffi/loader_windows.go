//go:build windows

package ffi

import (
	"golang.org/x/sys/windows"
)

type dll struct {
	handle windows.Handle
}

// Open loads path with LoadLibrary.
func (l *NativeLoader) Open(path string) (Module, error) {
	h, err := windows.LoadLibrary(path)
	if err != nil {
		return nil, err
	}
	return &dll{handle: h}, nil
}

func (d *dll) Bind(symbol string, fnPtr any) error {
	addr, err := windows.GetProcAddress(d.handle, symbol)
	if err != nil {
		return err
	}
	return registerFunc(fnPtr, addr)
}

func (d *dll) Close() error {
	return windows.FreeLibrary(d.handle)
}
