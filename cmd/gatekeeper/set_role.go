package main

import (
	"fmt"

	"github.com/aussiebroadwan/gatekeeper/internal/auth/app"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/domain"
	"github.com/aussiebroadwan/gatekeeper/internal/auth/service"
	"github.com/spf13/cobra"
)

var setRoleCmd = &cobra.Command{
	Use:   "set-role <username> <role>",
	Short: "Change a user's role",
	Long: `Writes a new role for an existing user, e.g. "set-role bob ROLE_ADMIN".
Tokens the user already holds pick up the new role on their next request.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := app.OpenDatabase(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		users := &service.UserService{Store: db, Timeout: cfg.StoreTimeout}
		if err := users.SetRole(cmd.Context(), args[0], domain.Role(args[1])); err != nil {
			return err
		}

		_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s is now %s\n", args[0], args[1])
		return err
	},
}
