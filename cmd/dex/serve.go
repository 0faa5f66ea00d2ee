package main

import (
	"github.com/spf13/cobra"

	"github.com/ersonp/dex-core/internal/infrastructure/httpapi"
)

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the catalog over a JSON HTTP API",
		Long:  "Starts the HTTP API. Favorites and the comparison selection are shared by all clients.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default from config)")

	return cmd
}

func runServe(cmd *cobra.Command, addr string) error {
	ctx := cmd.Context()

	return withDeps(ctx, func(d *Deps) error {
		if addr == "" {
			addr = d.Config.Server.Addr
		}

		server := httpapi.NewServer(httpapi.Deps{
			Catalog:        d.Catalog,
			Favorites:      d.Favorites,
			Compare:        d.Compare,
			Session:        d.Session,
			Logger:         d.Logger,
			AllowedOrigins: d.Config.Server.AllowedOrigins,
		})

		return server.Run(ctx, addr)
	})
}
