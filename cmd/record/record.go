// Package record implements manual transaction entry.
package record

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/cashpool"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/models"
	"github.com/rygrffth/cashflow/internal/record"
)

var (
	flagIncome  bool
	flagPending bool
	flagCash    bool
	category    string
	amount      int64
	note        string
	date        string
	dueDate     string
)

// Cmd is the record command.
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Append a transaction to the ledger",
	RunE:  run,
}

var settleCmd = &cobra.Command{
	Use:   "settle <transaction-id>",
	Short: "Clear a pending scheduled settlement as of today",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettle,
}

func init() {
	Cmd.Flags().StringVarP(&category, "category", "c", "", "Transaction category (required)")
	Cmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Amount in whole rupiah (required)")
	Cmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")
	Cmd.Flags().StringVarP(&date, "date", "d", "", "Date YYYY-MM-DD (default today)")
	Cmd.Flags().StringVar(&dueDate, "due", "", "Due date for a pending settlement")
	Cmd.Flags().BoolVar(&flagIncome, "income", false, "Record an income instead of an expense")
	Cmd.Flags().BoolVar(&flagPending, "pending", false, "Record as a pending scheduled settlement")
	Cmd.Flags().BoolVar(&flagCash, "cash", false, "Draw from the cash pool instead of the bank")
	_ = Cmd.MarkFlagRequired("category")
	_ = Cmd.MarkFlagRequired("amount")

	Cmd.AddCommand(settleCmd)
}

func runSettle(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	pool := cashpool.NewPool(app.Store, app.Log)
	recorder := record.NewRecorder(app.Store, pool, app.Log, app.Baseline())
	t, err := recorder.Settle(context.Background(), args[0], time.Now())
	if err != nil {
		return err
	}

	fmt.Printf("Lunas: %s %s pada %s.\n",
		currencyutils.FormatRupiah(t.Amount), t.Category, t.SettledDate)
	return nil
}

func run(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	t := &models.Transaction{
		Date:      date,
		Direction: models.DirectionExpense,
		Category:  category,
		Amount:    decimal.NewFromInt(amount),
		Note:      note,
		Source:    models.SourceBank,
	}
	if flagIncome {
		t.Direction = models.DirectionIncome
	}
	if flagCash {
		t.Source = models.SourceCash
	}
	if flagPending {
		t.Category = models.CategoryScheduledSettlement
		t.Status = models.StatusPending
		t.DueDate = dueDate
	}

	pool := cashpool.NewPool(app.Store, app.Log)
	recorder := record.NewRecorder(app.Store, pool, app.Log, app.Baseline())
	if err := recorder.Record(context.Background(), t); err != nil {
		return err
	}

	fmt.Printf("Tercatat: %s %s (%s)\n",
		t.Direction, currencyutils.FormatRupiah(t.Amount), t.Category)
	return nil
}
