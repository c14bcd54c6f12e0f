// Package receivable implements the receivable tracker commands.
package receivable

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/receivable"
)

var (
	debtor  string
	amount  int64
	dueDate string
	note    string
)

// Cmd is the receivable command group.
var Cmd = &cobra.Command{
	Use:   "receivable",
	Short: "Track money lent to others",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Record money lent today",
	RunE:  runAdd,
}

var settleCmd = &cobra.Command{
	Use:   "settle <receivable-id>",
	Short: "Mark a receivable repaid",
	Args:  cobra.ExactArgs(1),
	RunE:  runSettle,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List receivables",
	RunE:  runList,
}

func init() {
	addCmd.Flags().StringVarP(&debtor, "debtor", "d", "", "Who owes the money (required)")
	addCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Amount in whole rupiah (required)")
	addCmd.Flags().StringVar(&dueDate, "due", "", "Due date YYYY-MM-DD")
	addCmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")
	_ = addCmd.MarkFlagRequired("debtor")
	_ = addCmd.MarkFlagRequired("amount")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(settleCmd)
	Cmd.AddCommand(listCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	tracker := receivable.NewTracker(app.Store, app.Log)
	r, err := tracker.Create(context.Background(), debtor, decimal.NewFromInt(amount), dueDate, note)
	if err != nil {
		return err
	}

	fmt.Printf("Piutang %s untuk %s tercatat (id %s).\n",
		currencyutils.FormatRupiah(r.Amount), r.Debtor, r.ID)
	return nil
}

func runSettle(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	tracker := receivable.NewTracker(app.Store, app.Log)
	r, err := tracker.MarkRepaid(context.Background(), args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Piutang %s dari %s lunas.\n",
		currencyutils.FormatRupiah(r.Amount), r.Debtor)
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	receivables, err := app.Store.ListReceivables(ctx)
	if err != nil {
		return err
	}
	if len(receivables) == 0 {
		fmt.Println("Tidak ada piutang.")
		return nil
	}

	overdue, err := receivable.NewTracker(app.Store, app.Log).Overdue(ctx, time.Now())
	if err != nil {
		return err
	}
	overdueIDs := make(map[string]bool, len(overdue))
	for _, r := range overdue {
		overdueIDs[r.ID] = true
	}

	for _, r := range receivables {
		marker := ""
		if overdueIDs[r.ID] {
			marker = "  TELAT"
		}
		fmt.Printf("%s  %-20s %-12s %s%s\n",
			r.ID, r.Debtor, currencyutils.FormatRupiah(r.Amount), r.Status, marker)
	}
	return nil
}
