package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/buildscript/internal/engine"
	"github.com/alexisbeaulieu97/buildscript/internal/task/actions"
)

func newRunCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "run <task>...",
		Short: "Run tasks and their dependencies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasks(cmd, flags, args)
		},
	}
}

func newCleanCmd(flags *rootFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Delete the build output directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTasks(cmd, flags, []string{actions.CleanTaskName})
		},
	}
}

func runTasks(cmd *cobra.Command, flags *rootFlags, names []string) error {
	app, err := newAppContext(cmd, flags)
	if err != nil {
		return err
	}
	defer app.Close(cmd.Context())

	results, runErr := app.Build.Run(cmd.Context(), names, engine.RunOptions{DryRun: flags.dryRun})

	out := cmd.OutOrStdout()
	for _, res := range results {
		fmt.Fprintf(out, "%s %s %s %s\n",
			app.Styles.header.Render(res.Task),
			app.Styles.status(res.Status),
			res.Message,
			app.Styles.muted.Render(fmt.Sprintf("(%s)", res.Duration.Round(time.Microsecond))),
		)
	}

	return runErr
}
