package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"alfredoptarigan/job-tracker/internal/auth"
	"alfredoptarigan/job-tracker/internal/config"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token signed with AUTH_SECRET",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().String("subject", "owner", "token subject")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	subject, _ := cmd.Flags().GetString("subject")

	cfg := config.Load()
	if cfg.Auth.Secret == "" {
		return fmt.Errorf("AUTH_SECRET must be set to issue tokens")
	}

	token, err := auth.NewTokenManager(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TokenTTL).Issue(subject)
	if err != nil {
		return err
	}
	if jsonOutput {
		return printJSON(map[string]string{"token": token, "expires_in": cfg.Auth.TokenTTL.String()})
	}
	fmt.Println(token)
	return nil
}
