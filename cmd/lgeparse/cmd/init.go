/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ssargent/lgeparse/pkg/config"
)

func newInitCmd(a *app) *cobra.Command {
	var force bool
	var archiveDir string

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter configuration file",
		Long: `Write a default configuration file with a freshly generated API key.

The file is written to the path given by --config
(default ~/.config/lgeparse/config.yaml).

Examples:
  lgeparse init
  lgeparse init --config ./lgeparse.yaml --archive-dir ./archive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			if config.ConfigExists(a.configPath) && !force {
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration already exists at %s. Use --force to overwrite.\n", a.configPath)
				return nil
			}

			cfg, err := config.BootstrapConfig(a.configPath, archiveDir)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Configuration written to %s\n", a.configPath)
			fmt.Fprintf(cmd.OutOrStdout(), "Archive directory: %s\n", cfg.Archive.Dir)
			fmt.Fprintf(cmd.OutOrStdout(), "API key: %s\n", cfg.Server.APIKey)
			fmt.Fprintf(cmd.OutOrStdout(), "\nYou can now start the server with:\n")
			fmt.Fprintf(cmd.OutOrStdout(), "  lgeparse serve --config %s\n", a.configPath)
			return nil
		},
	}

	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration")
	initCmd.Flags().StringVar(&archiveDir, "archive-dir", "", "archive directory to record in the configuration")
	return initCmd
}
