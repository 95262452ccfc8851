package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "swapictl",
	Short: "Run and manage the SWAPI server",
	Long: `Run and manage the SWAPI server.

A .env file in the working directory is loaded before any command runs.
Variables already set in the environment take precedence.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		envFile, _ := cmd.Flags().GetString("env-file")
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			cmd.PrintErrf("Warning: failed to load %s: %v\n", envFile, err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("env-file", ".env", "dotenv file loaded before the command runs")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func main() {
	Execute()
}
