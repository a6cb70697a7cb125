package cmd

import (
	"fmt"

	"github.com/abhisek/careercoach/internal/notify"
	"github.com/abhisek/careercoach/internal/server"
	"github.com/spf13/cobra"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a signed API token for a user",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := notify.User{}
		user.ID, _ = cmd.Flags().GetString("user")
		user.Email, _ = cmd.Flags().GetString("email")
		user.Name, _ = cmd.Flags().GetString("name")
		ttl, _ := cmd.Flags().GetDuration("ttl")

		tok, err := server.NewAuth(cfg.JWTSecret, cfg.JWTIssuer).Issue(user, ttl)
		if err != nil {
			return fmt.Errorf("issue token: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), tok)
		return nil
	},
}

func init() {
	tokenCmd.Flags().String("user", "", "User ID (required)")
	tokenCmd.Flags().String("email", "", "User email")
	tokenCmd.Flags().String("name", "", "Display name")
	tokenCmd.Flags().Duration("ttl", server.DefaultTokenTTL, "Token lifetime")
	_ = tokenCmd.MarkFlagRequired("user")
}
