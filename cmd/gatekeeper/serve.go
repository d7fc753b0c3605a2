package main

import (
	"github.com/aussiebroadwan/gatekeeper/internal/auth/app"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:     "serve",
	Aliases: []string{"server", "start"},
	Short:   "Start the HTTP server",
	Args:    cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		application, err := app.New(cfg)
		if err != nil {
			return err
		}
		return application.Run()
	},
}
