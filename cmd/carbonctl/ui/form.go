package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
)

// MintInput holds the answers to the token mint form
type MintInput struct {
	UserID string
	Email  string
}

// RunMintForm prompts for whichever of userID and email is still empty
func RunMintForm(in *MintInput) error {
	var fields []huh.Field

	if in.UserID == "" {
		fields = append(fields, huh.NewInput().
			Title("User ID").
			Description("UUID of the account the token is for").
			Placeholder("00000000-0000-0000-0000-000000000000").
			Value(&in.UserID).
			Validate(ValidateUserID))
	}

	if in.Email == "" {
		fields = append(fields, huh.NewInput().
			Title("Email").
			Value(&in.Email).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return fmt.Errorf("email is required")
				}
				return nil
			}))
	}

	if len(fields) == 0 {
		return nil
	}

	form := huh.NewForm(huh.NewGroup(fields...)).WithTheme(huh.ThemeCatppuccin())
	if err := form.Run(); err != nil {
		return err
	}

	in.UserID = strings.TrimSpace(in.UserID)
	in.Email = strings.TrimSpace(in.Email)
	return nil
}

func ValidateUserID(s string) error {
	if _, err := uuid.Parse(strings.TrimSpace(s)); err != nil {
		return fmt.Errorf("user ID must be a UUID")
	}
	return nil
}
