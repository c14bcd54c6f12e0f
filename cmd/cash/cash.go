// Package cash implements cash pool commands.
package cash

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/cashpool"
	"github.com/rygrffth/cashflow/internal/currencyutils"
)

var (
	amount   int64
	note     string
	logLimit int
)

// Cmd is the cash command group.
var Cmd = &cobra.Command{
	Use:   "cash",
	Short: "Manage the physical cash pool",
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the pool to a counted absolute value",
	RunE:  runSet,
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Record an ATM withdrawal (bank expense paired with cash income)",
	RunE:  runWithdraw,
}

var logCmd = &cobra.Command{
	Use:   "log",
	Short: "Show the cash event history, newest first",
	RunE:  runLog,
}

func init() {
	setCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Counted value in whole rupiah (required)")
	setCmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")
	_ = setCmd.MarkFlagRequired("amount")

	withdrawCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Withdrawn amount in whole rupiah (required)")
	withdrawCmd.Flags().StringVarP(&note, "note", "n", "", "Free-text note")
	_ = withdrawCmd.MarkFlagRequired("amount")

	logCmd.Flags().IntVarP(&logLimit, "limit", "l", 10, "How many events to show (0 for all)")

	Cmd.AddCommand(setCmd)
	Cmd.AddCommand(withdrawCmd)
	Cmd.AddCommand(logCmd)
}

func runSet(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	pool := cashpool.NewPool(app.Store, app.Log)
	if err := pool.Set(context.Background(), decimal.NewFromInt(amount), note); err != nil {
		return err
	}
	fmt.Printf("Kas sekarang %s.\n", currencyutils.FormatRupiah(decimal.NewFromInt(amount)))
	return nil
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	pool := cashpool.NewPool(app.Store, app.Log)
	if err := pool.Withdraw(ctx, decimal.NewFromInt(amount), note); err != nil {
		return err
	}

	current, err := pool.Current(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Tarik tunai %s tercatat, kas sekarang %s.\n",
		currencyutils.FormatRupiah(decimal.NewFromInt(amount)),
		currencyutils.FormatRupiah(current))
	return nil
}

func runLog(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	pool := cashpool.NewPool(app.Store, app.Log)
	events, err := pool.Log(context.Background(), logLimit)
	if err != nil {
		return err
	}
	if len(events) == 0 {
		fmt.Println("Belum ada riwayat kas.")
		return nil
	}

	for _, e := range events {
		fmt.Printf("%s  %-12s %s\n", e.Date, currencyutils.FormatRupiah(e.Value), e.Note)
	}
	return nil
}
