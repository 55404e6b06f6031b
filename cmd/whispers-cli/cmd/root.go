package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd builds the command tree. Each call returns fresh commands so
// flags never leak between runs.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "whispers-cli",
		Short: "Exam Whispers admin tool",
		Long: `whispers-cli inspects and administers an Exam Whispers installation.

Available commands:
  version          Print the CLI version
  topics           Explore the message bus topics the server uses
  accounts         Manage accounts of the local identity backend
  history          Manage the logged study history

Use "whispers-cli [command] --help" for more information about a specific command.`,
		SilenceUsage: true,
	}

	root.AddCommand(newVersionCmd(), newTopicsCmd(), newAccountsCmd(), newHistoryCmd())
	return root
}

// Execute executes the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
