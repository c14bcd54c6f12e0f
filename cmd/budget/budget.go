// Package budget implements monthly budget target commands.
package budget

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/budget"
	"github.com/rygrffth/cashflow/internal/currencyutils"
)

var (
	category string
	target   int64
)

// Cmd is the budget command group.
var Cmd = &cobra.Command{
	Use:   "budget",
	Short: "Per-category monthly spending targets",
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Create or replace a category's monthly target",
	RunE:  runSet,
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show month-to-date spend against each target",
	RunE:  runStatus,
}

func init() {
	setCmd.Flags().StringVarP(&category, "category", "c", "", "Category name (required)")
	setCmd.Flags().Int64VarP(&target, "target", "t", 0, "Monthly target in whole rupiah (required)")
	_ = setCmd.MarkFlagRequired("category")
	_ = setCmd.MarkFlagRequired("target")

	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(statusCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	tracker := budget.NewTracker(app.Store)
	if err := tracker.SetTarget(context.Background(), category, decimal.NewFromInt(target)); err != nil {
		return err
	}
	fmt.Printf("Anggaran %s: %s per bulan.\n",
		category, currencyutils.FormatRupiah(decimal.NewFromInt(target)))
	return nil
}

func runStatus(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	tracker := budget.NewTracker(app.Store)
	statuses, err := tracker.MonthStatus(context.Background(), time.Now())
	if err != nil {
		return err
	}
	if len(statuses) == 0 {
		fmt.Println("Belum ada anggaran.")
		return nil
	}

	for _, s := range statuses {
		fmt.Printf("%-20s %s / %s  [%s]\n",
			s.Category,
			currencyutils.FormatRupiah(s.Spent),
			currencyutils.FormatRupiah(s.Target),
			s.Health)
	}
	return nil
}
