package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func newPluginsCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "plugins",
		Short: "List declared plugins in declaration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			out := cmd.OutOrStdout()
			if len(app.Build.Plugins) == 0 {
				fmt.Fprintln(out, app.Styles.muted.Render("No plugins declared."))
				return nil
			}

			rows := make([][]string, 0, len(app.Build.Plugins))
			for _, p := range app.Build.Plugins {
				version := p.Version
				if p.Builtin {
					version = "(builtin)"
				}
				rows = append(rows, []string{p.ID, version, strconv.FormatBool(p.Apply)})
			}
			fmt.Fprintln(out, app.Styles.table([]string{"ID", "VERSION", "APPLY"}, rows))
			return nil
		},
	}
}

func newRepositoriesCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "repositories",
		Aliases: []string{"repos"},
		Short:   "List repository sources in resolution order",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			out := cmd.OutOrStdout()
			if len(app.Build.Repositories) == 0 {
				fmt.Fprintln(out, app.Styles.muted.Render("No repositories declared; plugin resolution will fail."))
				return nil
			}

			rows := make([][]string, 0, len(app.Build.Repositories))
			for i, r := range app.Build.Repositories {
				rows = append(rows, []string{strconv.Itoa(i + 1), r.Name, r.URL})
			}
			fmt.Fprintln(out, app.Styles.table([]string{"#", "NAME", "URL"}, rows))
			return nil
		},
	}
}

func newTasksCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "List registered tasks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(cmd, flags)
			if err != nil {
				return err
			}
			defer app.Close(cmd.Context())

			rows := [][]string{}
			for _, t := range app.Build.Registry.Tasks() {
				described := make([]string, 0, len(t.Actions))
				for _, a := range t.Actions {
					described = append(described, a.Describe())
				}
				rows = append(rows, []string{
					t.Name,
					t.Description,
					strings.Join(t.DependsOn, ", "),
					strings.Join(described, "; "),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), app.Styles.table([]string{"TASK", "DESCRIPTION", "DEPENDS ON", "ACTIONS"}, rows))
			return nil
		},
	}
}
