package cmd

import (
	"fmt"

	"subra-settlement/internal/app"
	"subra-settlement/internal/core/domain"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
)

type balanceLine struct {
	Currency string `json:"currency"`
	Balance  string `json:"balance"`
}

var balanceCmd = &cobra.Command{
	Use:   "balance <address>",
	Short: "Show native and token balances of an address",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		owner, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		assets, err := app.NewAssets(cfg.Solana)
		if err != nil {
			return err
		}
		client := app.NewLedger(cfg.Solana, nil, log)

		lamports, err := client.GetNativeBalance(cmd.Context(), owner)
		if err != nil {
			return err
		}
		lines := []balanceLine{{
			Currency: domain.NativeSymbol,
			Balance:  domain.FromBaseUnits(lamports, domain.NativeAsset{}.Decimals()).String(),
		}}

		if asset, ok := assets.Resolve(cfg.Solana.TokenSymbol); ok {
			if token, ok := asset.(domain.TokenAsset); ok {
				units, err := client.GetTokenBalance(cmd.Context(), owner, token.Mint)
				if err != nil {
					return err
				}
				lines = append(lines, balanceLine{
					Currency: token.Symbol(),
					Balance:  domain.FromBaseUnits(units, token.Decimals()).String(),
				})
			}
		}
		return printJSON(cmd, lines)
	},
}

func init() {
	rootCmd.AddCommand(balanceCmd)
}
