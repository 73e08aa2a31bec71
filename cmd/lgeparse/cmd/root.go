/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ssargent/lgeparse/pkg/config"
	"github.com/ssargent/lgeparse/pkg/di"
	"github.com/ssargent/lgeparse/pkg/logging"
	"github.com/ssargent/lgeparse/pkg/render"
)

// app carries state shared by every command once flags are parsed
type app struct {
	configPath string
	verbose    bool
	container  *di.Container
}

// setup resolves configuration and builds the container
func (a *app) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Resolve(a.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if a.verbose {
		cfg.Logging.Level = logging.LevelDebug
	}

	logger, err := logging.New(cfg.Logging, cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	logger.WithFields(logrus.Fields{"config": a.configPath, "level": logger.GetLevel()}).Debug("configuration resolved")

	a.container = di.NewContainer(cfg, logger)
	return nil
}

// outputFormat picks the format from explicit flags, then configuration
func (a *app) outputFormat(asJSON, asText bool) (render.Format, error) {
	switch {
	case asJSON:
		return render.FormatJSON, nil
	case asText:
		return render.FormatText, nil
	default:
		return render.ParseFormat(a.container.Config().Output.Format)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}
	var asJSON, asText bool

	rootCmd := &cobra.Command{
		Use:   "lgeparse <input> [output]",
		Short: "Football Pro '98 league file parser",
		Long: `lgeparse decodes Football Pro '98 .lge league files into JSON or plain text.

The input may be the raw binary league file or a C hex-literal dump of it
("unsigned char ...DataBlock[] = { 0x.., ... }"). Output goes to standard
output unless an output path is given.

Examples:
  lgeparse NFLPI95.lge
  lgeparse NFLPI95.lge league.txt --text`,
		Args:              cobra.RangeArgs(1, 2),
		PersistentPreRunE: a.setup,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			format, err := a.outputFormat(asJSON, asText)
			if err != nil {
				return err
			}

			res, err := a.container.Parser().ParseFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if len(args) == 2 {
				if err := render.WriteFile(args[1], res.Store, format); err != nil {
					return err
				}
				a.container.Logger().WithField("output", args[1]).Info("league written")
				return nil
			}
			return render.Write(cmd.OutOrStdout(), res.Store, format)
		},
	}

	rootCmd.Flags().BoolVar(&asJSON, "json", false, "write JSON output (default)")
	rootCmd.Flags().BoolVar(&asText, "text", false, "write plain-text output")
	rootCmd.MarkFlagsMutuallyExclusive("json", "text")

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", config.GetDefaultConfigPath(), "config file")
	rootCmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newBlocksCmd(a),
		newArchiveCmd(a),
		newServeCmd(a),
		newInitCmd(a),
	)

	return rootCmd
}

// Execute builds the command tree and runs it.
// This is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
