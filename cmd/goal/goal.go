// Package goal implements savings goal commands.
package goal

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/savings"
)

var (
	name       string
	target     int64
	targetDate string
	category   string
	priority   int
	note       string
	amount     int64
)

// Cmd is the goal command group.
var Cmd = &cobra.Command{
	Use:   "goal",
	Short: "Manage savings goals",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Create a savings goal",
	RunE:  runAdd,
}

var depositCmd = &cobra.Command{
	Use:   "deposit <goal-id>",
	Short: "Add money to a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runDeposit,
}

var withdrawCmd = &cobra.Command{
	Use:   "withdraw <goal-id>",
	Short: "Take money out of a goal",
	Args:  cobra.ExactArgs(1),
	RunE:  runWithdraw,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List savings goals",
	RunE:  runList,
}

var removeCmd = &cobra.Command{
	Use:   "remove <goal-id>",
	Short: "Delete a goal and its history",
	Args:  cobra.ExactArgs(1),
	RunE:  runRemove,
}

func init() {
	addCmd.Flags().StringVarP(&name, "name", "n", "", "Goal name (required)")
	addCmd.Flags().Int64VarP(&target, "target", "t", 0, "Target amount in whole rupiah (required)")
	addCmd.Flags().StringVar(&targetDate, "date", "", "Target date YYYY-MM-DD")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "Goal category")
	addCmd.Flags().IntVarP(&priority, "priority", "p", 3, "Priority 1 (highest) to 5")
	addCmd.Flags().StringVar(&note, "note", "", "Free-text note")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("target")

	for _, c := range []*cobra.Command{depositCmd, withdrawCmd} {
		c.Flags().Int64VarP(&amount, "amount", "a", 0, "Amount in whole rupiah (required)")
		c.Flags().StringVar(&note, "note", "", "Free-text note")
		_ = c.MarkFlagRequired("amount")
	}

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(depositCmd)
	Cmd.AddCommand(withdrawCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(removeCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	mgr := savings.NewManager(app.Store, app.Log)
	g, err := mgr.Create(context.Background(), name, decimal.NewFromInt(target),
		targetDate, category, priority, note)
	if err != nil {
		return err
	}

	fmt.Printf("Target %q sebesar %s dibuat (id %s).\n",
		g.Name, currencyutils.FormatRupiah(g.Target), g.ID)
	return nil
}

func runDeposit(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	mgr := savings.NewManager(app.Store, app.Log)
	g, err := mgr.Deposit(context.Background(), args[0], decimal.NewFromInt(amount), note)
	if err != nil {
		return err
	}

	fmt.Printf("Setor %s ke %q: terkumpul %s dari %s (%s)\n",
		currencyutils.FormatRupiah(decimal.NewFromInt(amount)), g.Name,
		currencyutils.FormatRupiah(g.Collected), currencyutils.FormatRupiah(g.Target), g.Status)
	return nil
}

func runWithdraw(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	mgr := savings.NewManager(app.Store, app.Log)
	g, err := mgr.Withdraw(context.Background(), args[0], decimal.NewFromInt(amount), note)
	if err != nil {
		return err
	}

	fmt.Printf("Tarik %s dari %q: tersisa %s\n",
		currencyutils.FormatRupiah(decimal.NewFromInt(amount)), g.Name,
		currencyutils.FormatRupiah(g.Collected))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	goals, err := app.Store.ListSavingsGoals(context.Background())
	if err != nil {
		return err
	}
	if len(goals) == 0 {
		fmt.Println("Belum ada target tabungan.")
		return nil
	}

	for _, g := range goals {
		fmt.Printf("%s  P%d %-20s %s / %s  [%s]\n",
			g.ID, g.Priority, g.Name,
			currencyutils.FormatRupiah(g.Collected),
			currencyutils.FormatRupiah(g.Target), g.Status)
	}
	return nil
}

func runRemove(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	mgr := savings.NewManager(app.Store, app.Log)
	if err := mgr.Remove(context.Background(), args[0]); err != nil {
		return err
	}
	fmt.Println("Target dihapus.")
	return nil
}
