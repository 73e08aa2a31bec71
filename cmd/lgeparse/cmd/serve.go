/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/ssargent/lgeparse/pkg/api"
	"github.com/ssargent/lgeparse/pkg/render"
)

func newServeCmd(a *app) *cobra.Command {
	var bind string
	var port int
	var archiveDir string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the REST API server",
		Long: `Start the lgeparse REST API server.

League files posted to /api/v1/parse are decoded and rendered; files posted
to /api/v1/leagues are also archived. Prometheus metrics are served at
/metrics. When server.api_key is set, /api/v1 routes other than health
require the X-API-Key header.

Examples:
  lgeparse serve
  lgeparse serve --bind 0.0.0.0 --port 9200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			cfg := a.container.Config()

			if cmd.Flags().Changed("bind") {
				cfg.Server.Bind = bind
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			format, err := render.ParseFormat(cfg.Output.Format)
			if err != nil {
				return err
			}

			arch, err := a.container.OpenArchive(archiveDir)
			if err != nil {
				return err
			}
			defer arch.Close()

			server := a.container.GetServerFactory().CreateServer(api.ServerConfig{
				Bind:           cfg.Server.Bind,
				Port:           cfg.Server.Port,
				APIKey:         cfg.Server.APIKey,
				MaxUploadBytes: cfg.Server.MaxUploadBytes,
				DefaultFormat:  format,
			}, arch)

			if cfg.Server.APIKey == "" {
				a.container.Logger().Warn("server.api_key is not set; API is unauthenticated")
			}
			return server.ListenAndServe(cmd.Context())
		},
	}

	serveCmd.Flags().StringVar(&bind, "bind", "", "address to bind (defaults to server.bind)")
	serveCmd.Flags().IntVarP(&port, "port", "p", 0, "port to listen on (defaults to server.port)")
	serveCmd.Flags().StringVar(&archiveDir, "archive-dir", "", "archive directory (defaults to archive.dir)")
	return serveCmd
}
