// Package cli implements httpmockd's command-line interface.
package cli

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "httpmockd",
	Short: "httpmockd is a standalone HTTP mock server",
	Long: `httpmockd serves mock HTTP responses chosen by matching each inbound
request against a set of registered mock definitions, for tests driven from
outside a Go process. Mocks can be registered through the /__mocks
management API at runtime or loaded from YAML/JSON files at startup.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command. It is the only exported entry point cmd/httpmockd calls.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}
