package commands

import (
	"fmt"

	"github.com/holiy930561/LenDon"
	"github.com/holiy930561/LenDon/render"
	"github.com/spf13/cobra"
)

func newScenariosCmd(a *app) *cobra.Command {
	var (
		current string
		htmlOut bool
	)

	cmd := &cobra.Command{
		Use:   "scenarios",
		Short: "List the content scenarios",
		Long: `List the content scenarios in the interface language, with the current
scenario marked.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := lendon.ParseScenario(current)
			if err != nil {
				return err
			}

			var out string
			if htmlOut {
				out, err = render.ModeSelector(a.language, scenario)
				out += "\n"
			} else {
				out, err = render.ModeSelectorText(a.language, scenario)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.Flags().StringVarP(&current, "scenario", "s", "seo", "Scenario to mark as current")
	cmd.Flags().BoolVar(&htmlOut, "html", false, "Output the scenario tabs as HTML")

	return cmd
}
