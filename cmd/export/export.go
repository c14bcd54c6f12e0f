// Package export implements CSV export of the transaction ledger.
package export

import (
	"context"
	"fmt"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/logging"
)

var output string

// Cmd is the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export all transactions to CSV",
	RunE:  run,
}

func init() {
	Cmd.Flags().StringVarP(&output, "output", "o", "transactions.csv", "Output CSV file")
}

func run(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	transactions, err := app.Store.ListTransactions(context.Background())
	if err != nil {
		return err
	}

	f, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	if err := gocsv.MarshalFile(&transactions, f); err != nil {
		return fmt.Errorf("failed to write CSV: %w", err)
	}

	app.Log.Info("Transactions exported",
		logging.F(logging.FieldFile, output),
		logging.F(logging.FieldCount, len(transactions)))
	fmt.Printf("%d transaksi ditulis ke %s\n", len(transactions), output)
	return nil
}
