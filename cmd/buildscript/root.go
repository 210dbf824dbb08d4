package main

import (
	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/buildscript/internal/config"
)

type rootFlags struct {
	file       string
	projectDir string
	verbose    bool
	dryRun     bool
	settings   config.Settings
}

func newRootCmd(settings config.Settings) *cobra.Command {
	flags := &rootFlags{settings: settings}

	cmd := &cobra.Command{
		Use:           "buildscript",
		Short:         "Load build descriptors and run maintenance tasks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&flags.file, "file", "f", settings.File, "Path to the build descriptor (default: discovered in the project dir)")
	cmd.PersistentFlags().StringVarP(&flags.projectDir, "project-dir", "p", settings.ProjectDir, "Project root directory")
	cmd.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().BoolVar(&flags.dryRun, "dry-run", false, "Report what tasks would do without changing anything")

	cmd.AddCommand(newPluginsCmd(flags))
	cmd.AddCommand(newRepositoriesCmd(flags))
	cmd.AddCommand(newTasksCmd(flags))
	cmd.AddCommand(newRunCmd(flags))
	cmd.AddCommand(newCleanCmd(flags))
	cmd.AddCommand(newResolveCmd(flags))
	cmd.AddCommand(newVersionCmd())

	return cmd
}
