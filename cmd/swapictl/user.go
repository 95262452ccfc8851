package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/doodlesbykumbi/swapi-in-go/pkg/db"
	"github.com/doodlesbykumbi/swapi-in-go/pkg/server/store/gorm"
)

// userCmd represents the user command
var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts",
	Long:  `Manage user accounts and their passwords.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("error: Command 'user' requires a subcommand (create, reset-password)")
		fmt.Println()
		_ = cmd.Help()
		os.Exit(1)
	},
}

func init() {
	rootCmd.AddCommand(userCmd)
}

func openUsersStore() (*gorm.UsersStore, error) {
	database, err := db.Connect(db.Config{URL: databaseURL()})
	if err != nil {
		return nil, err
	}
	return gorm.NewUsersStore(database)
}
