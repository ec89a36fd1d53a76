// Command yodas serves the vocabulary API and carries the operator
// commands that manage its database.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "yodas",
	Short: "Yodas vocabulary API",
	Long: `yodas serves per-language term tables, named term sets and their
linkages over HTTP. The subcommands migrate the schema, create login users
and bulk import terms.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file (default ./config.yaml)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(userCmd)
	rootCmd.AddCommand(termsCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
