// Package recurring implements recurring rule management. The scheduler
// itself runs on every invocation; these subcommands only edit the rules.
package recurring

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/models"
)

var (
	name      string
	category  string
	amount    int64
	startDate string
	weekly    bool
	note      string
)

// Cmd is the recurring command group.
var Cmd = &cobra.Command{
	Use:   "recurring",
	Short: "Manage recurring expense rules",
}

var addCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a recurring rule",
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recurring rules",
	RunE:  runList,
}

var toggleCmd = &cobra.Command{
	Use:   "toggle <rule-id>",
	Short: "Flip a rule between active and inactive",
	Args:  cobra.ExactArgs(1),
	RunE:  runToggle,
}

func init() {
	addCmd.Flags().StringVarP(&name, "name", "n", "", "Rule name (required)")
	addCmd.Flags().StringVarP(&category, "category", "c", "", "Category for generated expenses (required)")
	addCmd.Flags().Int64VarP(&amount, "amount", "a", 0, "Amount in whole rupiah (required)")
	addCmd.Flags().StringVarP(&startDate, "start", "s", "", "Start date YYYY-MM-DD; its day anchors monthly rules (required)")
	addCmd.Flags().BoolVarP(&weekly, "weekly", "w", false, "Fire weekly instead of monthly")
	addCmd.Flags().StringVar(&note, "note", "", "Free-text note")
	_ = addCmd.MarkFlagRequired("name")
	_ = addCmd.MarkFlagRequired("category")
	_ = addCmd.MarkFlagRequired("amount")
	_ = addCmd.MarkFlagRequired("start")

	Cmd.AddCommand(addCmd)
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(toggleCmd)
}

func runAdd(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	if amount <= 0 {
		return errs.NewValidation("amount", "must be greater than zero")
	}

	freq := models.FrequencyMonthly
	if weekly {
		freq = models.FrequencyWeekly
	}
	rule := &models.RecurringRule{
		Name:      name,
		Category:  category,
		Amount:    decimal.NewFromInt(amount),
		StartDate: startDate,
		Frequency: freq,
		Active:    true,
		Note:      note,
	}
	if err := app.Store.InsertRecurringRule(context.Background(), rule); err != nil {
		return err
	}

	fmt.Printf("Aturan %q (%s) dibuat: %s\n", rule.Name, rule.Frequency,
		currencyutils.FormatRupiah(rule.Amount))
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	rules, err := app.Store.ListRecurringRules(context.Background())
	if err != nil {
		return err
	}
	if len(rules) == 0 {
		fmt.Println("Belum ada aturan berulang.")
		return nil
	}

	for _, r := range rules {
		state := "aktif"
		if !r.Active {
			state = "nonaktif"
		}
		fmt.Printf("%s  %-20s %-10s %-12s mulai %s [%s]\n",
			r.ID, r.Name, r.Frequency, currencyutils.FormatRupiah(r.Amount), r.StartDate, state)
	}
	return nil
}

func runToggle(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	rules, err := app.Store.ListRecurringRules(ctx)
	if err != nil {
		return err
	}
	for _, r := range rules {
		if r.ID != args[0] {
			continue
		}
		if err := app.Store.SetRecurringRuleActive(ctx, r.ID, !r.Active); err != nil {
			return err
		}
		state := "aktif"
		if r.Active {
			state = "nonaktif"
		}
		fmt.Printf("Aturan %q sekarang %s.\n", r.Name, state)
		return nil
	}
	return fmt.Errorf("recurring rule not found: %s", args[0])
}
