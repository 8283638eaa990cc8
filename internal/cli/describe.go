package cli

import (
	"errors"
	"log/slog"

	"github.com/spf13/cobra"
)

func newDescribeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "describe [name...]",
		Short: "Call descreve_jogador for each player name",
		Long: `Open the native module once and call descreve_jogador with each name in
order. Without arguments the configured names are used (default: Lucero).

Whatever the native function prints goes straight to stdout, so nothing else
is written there in either output format.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := args
			if len(names) == 0 {
				names = a.cfg.Names
			}
			if len(names) == 0 {
				return errors.New("no player names given")
			}

			// The module stays loaded until the process exits
			adapter, err := a.openAdapter()
			if err != nil {
				return err
			}

			for _, name := range names {
				if err := adapter.DescribePlayer(name); err != nil {
					return err
				}
			}
			a.logger.Info("players described", slog.String("path", adapter.Path()), slog.Int("count", len(names)))
			return nil
		},
	}
}
