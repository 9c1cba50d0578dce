package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	var flags installFlags
	cmd := &cobra.Command{
		Use:   "install",
		Short: "Create a virtual environment and install Firedrake into it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts := flags.options()
			if opts.WriteCacheOnly {
				return c.app.WriteCache(cmd.Context(), opts, flags.runOptions())
			}
			return c.app.Install(cmd.Context(), opts, flags.runOptions())
		},
	}
	flags.register(cmd)
	return cmd
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	var flags installFlags
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update an existing Firedrake environment",
		Long: "Update an existing Firedrake environment with the options chosen at install time.\n" +
			"Flags given on the command line replace the saved ones.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Update(cmd.Context(), flags.venvName, flags.overrides(cmd), flags.runOptions())
		},
	}
	flags.register(cmd)
	return cmd
}
