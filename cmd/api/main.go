// Package main runs the projectsync HTTP API.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "projectsync",
	Short: "Project tracking REST service",
	Long: `projectsync serves a REST API for creating, listing, updating and
deleting projects. Configuration is read from the environment (and a .env
file when present).`,
	Version:      version,
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}
