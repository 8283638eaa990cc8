// Package ffi binds Go functions to symbols exported by a native module and
// marshals player names into C strings for them.
package ffi

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

// DescribePlayerSymbol is the exported C function
//
//	void descreve_jogador(const char* nome);
const DescribePlayerSymbol = "descreve_jogador"

// FlushSymbol is libc's fflush. It is found through the module's own
// dependencies, so stdio output buffered on the native side can be flushed
// before the Go runtime exits the process without running C atexit handlers.
const FlushSymbol = "fflush"

// Config holds configuration for opening an Adapter
type Config struct {
	// LibraryPath is the native module path. Relative paths resolve against
	// the working directory.
	LibraryPath string
	// Encoding is the byte encoding of C string arguments (default utf-8)
	Encoding Encoding
	// Loader opens the module (default NativeLoader)
	Loader Loader
	// Logger is optional; if nil, a no-op logger is used
	Logger *slog.Logger
}

// binding pairs an exported symbol with the Go func value it is bound to.
type binding struct {
	symbol   string
	fn       any
	optional bool
}

// Adapter calls into an opened native module. It is not safe for concurrent use.
type Adapter struct {
	path     string
	encoding Encoding
	module   Module
	logger   *slog.Logger

	describePlayer func(nome *byte)
	flush          func(stream uintptr) int32
}

// Open loads the module at cfg.LibraryPath and binds every symbol the
// adapter needs. A missing path is reported before the loader runs.
func Open(cfg Config) (*Adapter, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.NewJSONHandler(io.Discard, nil))
	}
	loader := cfg.Loader
	if loader == nil {
		loader = NewNativeLoader()
	}
	enc, err := ParseEncoding(string(cfg.Encoding))
	if err != nil {
		return nil, err
	}

	path, err := resolvePath(cfg.LibraryPath)
	if err != nil {
		return nil, err
	}

	module, err := loader.Open(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	logger.Debug("module loaded", slog.String("path", path))

	a := &Adapter{
		path:     path,
		encoding: enc,
		module:   module,
		logger:   logger,
	}

	for _, b := range a.bindings() {
		if err := module.Bind(b.symbol, b.fn); err != nil {
			if b.optional {
				logger.Debug("optional symbol not bound", slog.String("symbol", b.symbol), slog.String("error", err.Error()))
				continue
			}
			if cerr := module.Close(); cerr != nil {
				logger.Warn("failed to close module", slog.String("path", path), slog.String("error", cerr.Error()))
			}
			return nil, &SymbolError{Path: path, Symbol: b.symbol, Err: err}
		}
		logger.Debug("symbol bound", slog.String("path", path), slog.String("symbol", b.symbol))
	}

	return a, nil
}

func (a *Adapter) bindings() []binding {
	return []binding{
		{symbol: DescribePlayerSymbol, fn: &a.describePlayer},
		{symbol: FlushSymbol, fn: &a.flush, optional: true},
	}
}

// Symbols lists the required symbols bound by Open, in binding order.
func (a *Adapter) Symbols() []string {
	var symbols []string
	for _, b := range a.bindings() {
		if !b.optional {
			symbols = append(symbols, b.symbol)
		}
	}
	return symbols
}

// Path returns the absolute module path
func (a *Adapter) Path() string {
	return a.path
}

// Encoding returns the encoding used for C string arguments
func (a *Adapter) Encoding() Encoding {
	return a.encoding
}

// DescribePlayer encodes name and passes it to descreve_jogador. Whatever the
// native function does with it (typically printing to stdout) is outside the
// adapter's control.
func (a *Adapter) DescribePlayer(name string) error {
	buf, err := EncodeName(name, a.encoding)
	if err != nil {
		return err
	}

	a.logger.Info("native call",
		slog.String("symbol", DescribePlayerSymbol),
		slog.String("name", name),
		slog.Int("bytes", len(buf)),
	)

	a.describePlayer(&buf[0])
	runtime.KeepAlive(buf)

	if a.flush != nil {
		// fflush(NULL) flushes every open output stream
		if rc := a.flush(0); rc != 0 {
			a.logger.Warn("native stdio flush failed", slog.Int("rc", int(rc)))
		}
	}
	return nil
}

// Close releases the module. Bound functions must not be called afterwards.
func (a *Adapter) Close() error {
	return a.module.Close()
}

func resolvePath(p string) (string, error) {
	if p == "" {
		return "", &LoadError{Path: p, Err: errors.New("no library path configured")}
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return "", &LoadError{Path: p, Err: err}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &LoadError{Path: abs, Err: err}
	}
	if info.IsDir() {
		return "", &LoadError{Path: abs, Err: errors.New("is a directory")}
	}
	return abs, nil
}
