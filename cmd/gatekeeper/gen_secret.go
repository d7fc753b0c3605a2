package main

import (
	"fmt"

	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/spf13/cobra"
)

var genSecretCmd = &cobra.Command{
	Use:   "gen-secret",
	Short: "Print a random 256-bit value suitable for AUTH_SECRET",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		secret, err := cryptox.GenerateToken(cryptox.TokenSize256)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), secret)
		return err
	},
}
