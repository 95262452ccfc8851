package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/audit"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/authenticator/authn"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/model"
)

// userCreateCmd represents the user create command
var userCreateCmd = &cobra.Command{
	Use:   "create <username>",
	Short: "Create a user account",
	Long: `Create a user account.

The password is read from SWAPI_USER_PASSWORD. When it is not set a random
password is generated and printed to stdout.

Example:
  swapictl user create leia --first-name Leia --last-name Organa
  SWAPI_USER_PASSWORD=alderaan swapictl user create leia`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		firstName, _ := cmd.Flags().GetString("first-name")
		lastName, _ := cmd.Flags().GetString("last-name")

		user, password, err := createUser(cmd.Context(), args[0], firstName, lastName)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to create user %s: %v\n", args[0], err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Created user %s (%s)\n", user.Username, user.ID)
		if password != "" {
			fmt.Println(password)
		}
	},
}

func init() {
	userCmd.AddCommand(userCreateCmd)
	userCreateCmd.Flags().String("first-name", "", "first name")
	userCreateCmd.Flags().String("last-name", "", "last name")
}

// createUser stores a new user. The generated password is returned, or ""
// when SWAPI_USER_PASSWORD supplied it.
func createUser(ctx context.Context, username, firstName, lastName string) (*model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, "", fmt.Errorf("username must not be blank")
	}

	password := os.Getenv("SWAPI_USER_PASSWORD")
	generated := ""
	if strings.TrimSpace(password) == "" {
		var err error
		if password, err = authn.GeneratePassword(); err != nil {
			return nil, "", err
		}
		generated = password
	}

	users, err := openUsersStore()
	if err != nil {
		return nil, "", err
	}

	taken, err := users.CountByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if taken > 0 {
		return nil, "", fmt.Errorf("username already taken")
	}

	hash, err := authn.HashPassword(password)
	if err != nil {
		return nil, "", err
	}
	user := &model.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    firstName,
		LastName:     lastName,
	}
	if err := users.Insert(ctx, user); err != nil {
		return nil, "", err
	}

	audit.Log(audit.UserCreateEvent{
		UserID:   user.ID,
		Username: user.Username,
		ClientIP: "swapictl",
		Success:  true,
	})
	return user, generated, nil
}
