package main

import (
	"os"

	"github.com/spf13/cobra"

	"tunemates/internal/interfaces/cli/migrate"
	"tunemates/internal/interfaces/cli/server"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "tunemates",
		Short: "Tunemates - collaborative playlist rooms",
		Long:  `Tunemates lets people share a room with friends, propose songs, and build a Spotify playlist together.`,
	}

	rootCmd.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
