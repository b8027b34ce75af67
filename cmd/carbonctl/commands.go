package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/redmonkez12/carbon-tracker/cmd/carbonctl/ui"
	"github.com/redmonkez12/carbon-tracker/internal/auth"
	"github.com/redmonkez12/carbon-tracker/internal/config"
	"github.com/redmonkez12/carbon-tracker/internal/database"
	"github.com/redmonkez12/carbon-tracker/internal/emission"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "carbonctl",
		Short:         "Admin tasks for the Carbon Tracker API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the Postgres tables if they do not exist",
		RunE:  runMigrate,
	}

	factorsCmd := &cobra.Command{
		Use:   "factors",
		Short: "Print the emission factor table",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ui.PrintFactors(cmd.OutOrStdout(), emission.All())
		},
	}

	tokenCmd := &cobra.Command{
		Use:   "token",
		Short: "Mint or inspect session tokens",
	}

	mintCmd := &cobra.Command{
		Use:   "mint",
		Short: "Mint a session token with the configured secret",
		Args:  cobra.NoArgs,
		RunE:  runMint,
	}
	mintCmd.Flags().String("user-id", "", "User ID (UUID) to embed in the token")
	mintCmd.Flags().String("email", "", "Email to embed in the token")
	mintCmd.Flags().Duration("ttl", 0, "Token lifetime (defaults to SESSION_TOKEN_DURATION)")

	inspectCmd := &cobra.Command{
		Use:   "inspect <token>",
		Short: "Verify a session token and print its claims",
		Args:  cobra.ExactArgs(1),
		RunE:  runInspect,
	}

	tokenCmd.AddCommand(mintCmd, inspectCmd)
	rootCmd.AddCommand(migrateCmd, factorsCmd, tokenCmd)

	return rootCmd
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return reportError(cmd, err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return reportError(cmd, err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
	defer cancel()

	if err := database.CreateSchema(ctx, db); err != nil {
		return reportError(cmd, err)
	}

	ui.PrintSuccess(cmd.OutOrStdout(), fmt.Sprintf("Schema ready in database %q", cfg.Database.DBName))
	return nil
}

func runMint(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return reportError(cmd, err)
	}

	userIDFlag, _ := cmd.Flags().GetString("user-id")
	emailFlag, _ := cmd.Flags().GetString("email")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	if ttl <= 0 {
		ttl = cfg.Auth.SessionTokenDuration
	}

	// Prompt only for what the flags did not supply
	in := ui.MintInput{UserID: userIDFlag, Email: emailFlag}
	if in.UserID == "" || in.Email == "" {
		if err := ui.RunMintForm(&in); err != nil {
			return fmt.Errorf("form cancelled: %w", err)
		}
	}

	userID, err := uuid.Parse(in.UserID)
	if err != nil {
		return reportError(cmd, fmt.Errorf("invalid user ID %q", in.UserID))
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return reportError(cmd, err)
	}

	token, err := tokenService.CreateToken(userID, in.Email, ttl)
	if err != nil {
		return reportError(cmd, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}

func runInspect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return reportError(cmd, err)
	}

	tokenService, err := auth.NewTokenService(cfg.Auth)
	if err != nil {
		return reportError(cmd, err)
	}

	claims, err := tokenService.VerifyToken(args[0])
	if err != nil {
		return reportError(cmd, err)
	}

	ui.PrintFields(cmd.OutOrStdout(), "Valid "+cfg.Auth.TokenStrategy+" token", []ui.Field{
		{Label: "User ID", Value: claims.UserID},
		{Label: "Email", Value: claims.Email},
		{Label: "Issued", Value: claims.IssuedAt.UTC().Format(time.RFC3339)},
		{Label: "Expires", Value: claims.ExpiresAt.UTC().Format(time.RFC3339)},
	})
	return nil
}

func reportError(cmd *cobra.Command, err error) error {
	ui.PrintError(cmd.ErrOrStderr(), err.Error())
	return err
}
