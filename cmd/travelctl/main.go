package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/FrancoGastia/AI-Travel-Companion/cmd/travelctl/commands"
)

func main() {
	var rootCmd = &cobra.Command{
		Use:   "travelctl",
		Short: "CLI client for the travel companion API",
		Long:  "Command-line client for chatting with the travel companion and inspecting notifications",
	}

	rootCmd.AddCommand(commands.NewHealthCmd())
	rootCmd.AddCommand(commands.NewChatCmd())
	rootCmd.AddCommand(commands.NewWeatherCmd())
	rootCmd.AddCommand(commands.NewNotificationsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
