package cmd

import (
	"fmt"
	"time"

	"subra-settlement/internal/service"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token <user-id>",
	Short: "Issue an API bearer token for a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, err := uuid.Parse(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id: %w", err)
		}
		cfg, _, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.JWT.Secret == "" {
			return fmt.Errorf("jwt.secret is not configured")
		}

		token, expires, err := service.NewJWTTokenService(cfg.JWT.Secret, cfg.JWT.Expiry, cfg.JWT.Issuer).Generate(userID)
		if err != nil {
			return err
		}
		return printJSON(cmd, map[string]string{
			"access_token": token,
			"expires_at":   expires.UTC().Format(time.RFC3339),
		})
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
}
