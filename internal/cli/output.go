package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
	out    io.Writer
	errOut io.Writer
}

// NewOutput creates a new Output formatter
func NewOutput(format string, out, errOut io.Writer) *Output {
	return &Output{format: format, out: out, errOut: errOut}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
				"kind":    errorKind(err),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(o.errOut, string(data))
	} else {
		fmt.Fprintf(o.errOut, "Error: %s\n", err)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(o.out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case CheckResult:
		o.printCheckResult(v)
	case EncodeResult:
		o.printEncodeResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// CheckResult reports a module that opened and bound cleanly
type CheckResult struct {
	Path     string   `json:"path"`
	Symbols  []string `json:"symbols"`
	Encoding string   `json:"encoding"`
	OK       bool     `json:"ok"`
}

// EncodeResult shows the buffer a name is marshalled to
type EncodeResult struct {
	Name     string `json:"name"`
	Encoding string `json:"encoding"`
	Hex      string `json:"hex"`
	Length   int    `json:"length"`
}

func (o *Output) printCheckResult(c CheckResult) {
	fmt.Fprintf(o.out, "Module: %s\n", c.Path)
	fmt.Fprintf(o.out, "Symbols: %s\n", strings.Join(c.Symbols, ", "))
	fmt.Fprintf(o.out, "Encoding: %s\n", c.Encoding)
	if c.OK {
		fmt.Fprintln(o.out, "OK")
	}
}

func (o *Output) printEncodeResult(e EncodeResult) {
	fmt.Fprintln(o.out, e.Hex)
}
