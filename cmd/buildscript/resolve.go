package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newResolveCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve",
		Short: "Locate every plugin in the declared repositories",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			resolutions, resolveErr := app.Build.Resolve(cmd.Context())

			rows := make([][]string, 0, len(resolutions))
			for _, res := range resolutions {
				rows = append(rows, []string{res.Plugin.ID, res.Plugin.Version, res.Source})
			}
			if len(rows) > 0 {
				fmt.Fprintln(cmd.OutOrStdout(), app.Styles.table([]string{"PLUGIN", "VERSION", "REPOSITORY"}, rows))
			}
			return resolveErr
		},
	}
}
