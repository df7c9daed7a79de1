// Package main is the entry point for the kgayguides server CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/bryhearnchi-bot/kgaytripguides-sub006/cmd/kgayguides/commands"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	rootCmd := &cobra.Command{
		Use:   "kgayguides",
		Short: "Admin backend for the K-GAY travel guides",
		Long:  "kgayguides serves the admin API for cruise and resort trip guides",
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewInitCommand())
	rootCmd.AddCommand(commands.NewTablesCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	return rootCmd.Execute()
}
