package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/sebuszqo/FinanceTracker/internal/auth"
	"github.com/sebuszqo/FinanceTracker/internal/config"
	"github.com/spf13/cobra"
)

// tokenCmd mints an access token signed with JWT_SECRET, for local use
// without the identity provider.
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a development access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		userID, _ := cmd.Flags().GetString("user")
		ttl, _ := cmd.Flags().GetDuration("ttl")
		if userID == "" {
			return errors.New("--user is required")
		}

		cfg, err := config.Load()
		if err != nil {
			return err
		}
		jwtManager, err := auth.NewJWTManager(cfg.JWTSecret)
		if err != nil {
			return err
		}

		token, err := jwtManager.GenerateAccessJWT(userID, ttl)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)

	tokenCmd.Flags().String("user", "", "user_id claim")
	tokenCmd.Flags().Duration("ttl", time.Hour, "token lifetime")
}
