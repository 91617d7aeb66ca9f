// Package main is the entry point for the strain-screen server
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/strain-screen/cmd/server/client"
)

var rootCmd = &cobra.Command{
	Use:   "strain-screen",
	Short: "Strain detail screen server",
	Long: `strain-screen renders the strain detail screen. It fetches effects, description
and flavors from the strain API in parallel and serves the merged view as HTML and JSON.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(client.ClientCmd)
}
