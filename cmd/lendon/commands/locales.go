package commands

import (
	"fmt"

	"github.com/holiy930561/LenDon/locales"
	"github.com/spf13/cobra"
)

func newLocalesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "locales",
		Short: "Inspect interface translations",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "check",
			Short: "Verify every language defines every string",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := locales.Check(); err != nil {
					return err
				}
				for _, lang := range locales.Languages() {
					fmt.Fprintf(cmd.OutOrStdout(), "%s: %d strings ok\n", lang, len(locales.Keys(lang)))
				}
				return nil
			},
		},
		&cobra.Command{
			Use:   "get KEY",
			Short: "Print one string, e.g. output.errorTitle",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				value, err := locales.Lookup(a.language, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), value)
				return err
			},
		},
	)

	return cmd
}
