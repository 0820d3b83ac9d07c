package main

import (
	"fmt"

	"skill-swap/internal/pkg/jwt"

	"github.com/spf13/cobra"
)

var tokenSubject string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the operator API",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, _, err := setup()
		if err != nil {
			return err
		}

		svc := jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn, cfg.App.AppName)
		if !svc.Enabled() {
			return fmt.Errorf("JWT_ACCESS_SECRET is not configured")
		}
		tok, err := svc.GenerateAccessToken(tokenSubject)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), tok)
		return err
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "operator", "token subject")
	rootCmd.AddCommand(tokenCmd)
}
