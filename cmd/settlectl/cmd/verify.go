package cmd

import (
	"errors"

	"subra-settlement/internal/app"
	"subra-settlement/internal/core/domain"
	"subra-settlement/internal/service"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var errUnverified = errors.New("payment not verified")

var verifyCmd = &cobra.Command{
	Use:   "verify <signature>",
	Short: "Check that a transaction paid a recipient",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		recipient, _ := cmd.Flags().GetString("recipient")
		amountStr, _ := cmd.Flags().GetString("amount")
		currency, _ := cmd.Flags().GetString("currency")

		amount := decimal.Zero
		if amountStr != "" {
			d, err := decimal.NewFromString(amountStr)
			if err != nil {
				return err
			}
			amount = d
		}

		cfg, log, err := loadConfig()
		if err != nil {
			return err
		}
		assets, err := app.NewAssets(cfg.Solana)
		if err != nil {
			return err
		}
		verifier := service.NewPaymentVerifier(app.NewLedger(cfg.Solana, nil, log), assets, log)

		result, err := verifier.Verify(cmd.Context(), domain.VerificationRequest{
			Signature: args[0],
			Recipient: recipient,
			Amount:    amount,
			Currency:  currency,
		})
		if err != nil {
			return err
		}
		if err := printJSON(cmd, result); err != nil {
			return err
		}
		if !result.Verified {
			return errUnverified
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringP("recipient", "r", "", "expected recipient address")
	verifyCmd.Flags().StringP("amount", "a", "", "minimum amount, empty accepts any positive transfer")
	verifyCmd.Flags().String("currency", domain.NativeSymbol, "currency tag")
	_ = verifyCmd.MarkFlagRequired("recipient")
}
