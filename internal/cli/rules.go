package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/phyten/todolint/internal/lint"
)

func newRulesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rule codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			for _, code := range lint.DefaultRegistry().Codes() {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), code); err != nil {
					return err
				}
			}
			return nil
		},
	}
}
