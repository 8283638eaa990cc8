package cli

import (
	"github.com/spf13/cobra"
)

func newCheckCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Verify the native module loads and exports every symbol",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := a.openAdapter()
			if err != nil {
				return err
			}
			defer func() { _ = adapter.Close() }()

			out := a.output(cmd)
			out.Print(CheckResult{
				Path:     adapter.Path(),
				Symbols:  adapter.Symbols(),
				Encoding: string(adapter.Encoding()),
				OK:       true,
			})
			return nil
		},
	}
}
