package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/jogador/internal/ffi"
)

func newEncodeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "encode <name>",
		Short: "Show the bytes a name is passed to the native module as",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			enc := a.cfg.FFIEncoding()
			buf, err := ffi.EncodeName(args[0], enc)
			if err != nil {
				return err
			}

			out := a.output(cmd)
			out.Print(EncodeResult{
				Name:     args[0],
				Encoding: string(enc),
				Hex:      fmt.Sprintf("% X", buf),
				Length:   len(buf),
			})
			return nil
		},
	}
}
