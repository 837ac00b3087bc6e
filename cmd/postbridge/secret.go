package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jdelaire/postbridge/internal/keychain"
)

var secretCmd = &cobra.Command{
	Use:   "secret",
	Short: "Manage secrets in the system keychain",
}

var secretSetCmd = &cobra.Command{
	Use:   "set <account> [value]",
	Short: "Store a secret in the system keychain",
	Long: `Stores a secret in the system keychain. Without a value argument the
secret is read from the first line of standard input.

Accounts: ` + strings.Join(keychain.Accounts, ", "),
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		account := args[0]
		if !keychain.Known(account) {
			return fmt.Errorf("unknown account %q: must be one of %s", account, strings.Join(keychain.Accounts, ", "))
		}

		var value string
		if len(args) == 2 {
			value = args[1]
		} else {
			v, err := readSecret(cmd.InOrStdin())
			if err != nil {
				return err
			}
			value = v
		}
		if value == "" {
			return fmt.Errorf("empty secret for %s", account)
		}

		if err := keychain.Set(account, value); err != nil {
			return fmt.Errorf("storing %s: %w", account, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "stored %s\n", account)
		return nil
	},
}

func readSecret(r io.Reader) (string, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("reading secret: %w", err)
	}
	return strings.TrimSpace(line), nil
}

func init() {
	secretCmd.AddCommand(secretSetCmd)
	rootCmd.AddCommand(secretCmd)
}
