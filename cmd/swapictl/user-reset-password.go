package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

// userResetPasswordCmd represents the user reset-password command
var userResetPasswordCmd = &cobra.Command{
	Use:   "reset-password <username>",
	Short: "Reset a user's password",
	Long: `Generate a new password for a user and store its hash.

The new password will be printed to stdout.

Example:
  swapictl user reset-password leia`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		password, err := resetPassword(cmd.Context(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to reset password for %s: %v\n", args[0], err)
			os.Exit(1)
		}
		fmt.Println(password)
	},
}

func init() {
	userCmd.AddCommand(userResetPasswordCmd)
}

func resetPassword(ctx context.Context, username string) (string, error) {
	users, err := openUsersStore()
	if err != nil {
		return "", err
	}

	user, err := users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}

	password, err := authn.GeneratePassword()
	if err != nil {
		return "", err
	}
	hash, err := authn.HashPassword(password)
	if err != nil {
		return "", err
	}

	if _, err := users.UpdateByID(ctx, user.ID, &model.User{PasswordHash: hash}, []string{"password_hash"}); err != nil {
		return "", fmt.Errorf("failed to update password: %w", err)
	}

	audit.Log(audit.PasswordEvent{
		UserID:   user.ID,
		Username: user.Username,
		ClientIP: "swapictl",
		Success:  true,
	})
	return password, nil
}
