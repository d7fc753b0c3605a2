// Command gatekeeper runs the bearer-token authentication service and its
// admin utilities.
package main

import (
	"fmt"
	"os"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/app"
	"github.com/spf13/cobra"
)

var cfg app.Config

var rootCmd = &cobra.Command{
	Use:   "gatekeeper",
	Short: "Gatekeeper - stateless JWT authentication service",
	Long: `gatekeeper issues HS256 bearer tokens for username/password logins and
authorizes requests by re-resolving the caller's role on every request.
Configuration is read from AUTH_* environment variables.`,
	SilenceUsage: true,
}

func main() {
	cfg = app.LoadConfig()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serveCmd, hashPasswordCmd, genSecretCmd, setRoleCmd)
}
