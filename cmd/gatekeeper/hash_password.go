package main

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/aussiebroadwan/gatekeeper/pkg/cryptox"
	"github.com/spf13/cobra"
)

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password [password]",
	Short: "Hash a password with the configured hasher",
	Long: `Prints the encoded hash for a password. The password is read from the
first argument, or from the first line of stdin when no argument is given.
Argon2id hashes use the pepper at AUTH_PEPPER_FILE.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		password, err := readPassword(cmd, args)
		if err != nil {
			return err
		}

		cryptox.SetPepperPath(cfg.PepperFile)
		hasher, err := cryptox.NewHasher(cfg.PasswordHasher, cfg.BcryptCost)
		if err != nil {
			return err
		}

		hash, err := hasher.Hash(password)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), hash)
		return err
	},
}

func readPassword(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	password := strings.TrimRight(line, "\r\n")
	if password == "" {
		if err != nil {
			return "", fmt.Errorf("read password: %w", err)
		}
		return "", errors.New("password must not be empty")
	}
	return password, nil
}
