package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/settings"
	"github.com/jaspreet-dot-casa/rapid-toolbox/pkg/tui"
)

func newSettingsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Manage backend settings (catalog path, listen address, logging)",
	}

	var force bool
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default settings file",
		Long: `Write a default settings file. Without a path it goes to the user
config directory as rapid-toolbox.yaml.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.settingsPath
			if len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				dir, err := settings.UserConfigDir()
				if err != nil {
					return fmt.Errorf("failed to locate config directory: %w", err)
				}
				path = filepath.Join(dir, settings.ConfigName+".yaml")
			}

			if err := settings.WriteDefault(path, force); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}
	initCmd.Flags().BoolVarP(&force, "force", "f", false, "Overwrite an existing file")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective settings as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, v, err := opts.loadSettings(false)
			if err != nil {
				return err
			}

			data, err := settings.Marshal(s)
			if err != nil {
				return err
			}
			if used := v.ConfigFileUsed(); used != "" {
				fmt.Fprintln(cmd.OutOrStdout(), tui.MutedStyle.Render("# "+used))
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.AddCommand(initCmd, showCmd)
	return cmd
}
