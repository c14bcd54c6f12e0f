// Package root contains the root command for the application.
package root

import (
	"github.com/spf13/cobra"
)

// Cmd is the root command.
var Cmd = &cobra.Command{
	Use:   "cashflow",
	Short: "A personal ledger with two cash pools, savings goals and bank email import.",
	Long: `cashflow tracks daily spending against a payday-bounded budget.
It keeps a Bank and a Cash pool, mirrors receivables and savings goals into
the ledger, generates recurring expenses, and imports transactions from
Mandiri notification emails.`,
	Run: func(cmd *cobra.Command, args []string) {
		_ = cmd.Help()
	},
}
