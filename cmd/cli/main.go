package main

import (
	"fmt"
	"github.com/joho/godotenv"
	"github.com/myrjola/gumshoe/cmd/cli/cart"
	"github.com/myrjola/gumshoe/cmd/cli/img"
	"github.com/spf13/cobra"
	"os"
)

func init() {
	// Missing .env is fine; the commands validate what they need.
	_ = godotenv.Load()
	rootCmd.AddGroup(cart.Group)
	rootCmd.AddCommand(cart.Validate)
	rootCmd.AddCommand(cart.Summary)
	rootCmd.AddGroup(img.Group)
	rootCmd.AddCommand(img.Generate)
}

var rootCmd = &cobra.Command{
	Use:  "gumshoe-cli",
	Long: `Command line utilities for the Gumshoe detective game engine`,
	Run: func(cmd *cobra.Command, args []string) {
		// Do Stuff Here
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}
