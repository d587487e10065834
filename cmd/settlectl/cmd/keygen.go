package cmd

import (
	"fmt"

	"subra-settlement/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var keygenCmd = &cobra.Command{
	Use:   "keygen",
	Short: "Generate a password-sealed funding wallet",
	Long:  `Generates a keypair and prints its address with the secret key sealed under the given password. The sealed key can be passed to the fund endpoint.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		password, _ := cmd.Flags().GetString("password")
		if len(password) < 8 {
			return fmt.Errorf("password must be at least 8 characters")
		}
		wallets := service.NewUserWalletService(service.NewArgon2Vault(), zerolog.Nop())
		w, err := wallets.CreateUserWallet(cmd.Context(), password)
		if err != nil {
			return err
		}
		return printJSON(cmd, w)
	},
}

func init() {
	rootCmd.AddCommand(keygenCmd)
	keygenCmd.Flags().StringP("password", "p", "", "password sealing the secret key")
	_ = keygenCmd.MarkFlagRequired("password")
}
