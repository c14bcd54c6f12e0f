// Package payday implements the next-income-date setting. The ledger engine
// divides the operational float by the days until this date.
package payday

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/dateutils"
	"github.com/rygrffth/cashflow/internal/errs"
	"github.com/rygrffth/cashflow/internal/store"
)

// Cmd is the payday command group.
var Cmd = &cobra.Command{
	Use:   "payday",
	Short: "Show or set the next income date",
	RunE:  runShow,
}

var setCmd = &cobra.Command{
	Use:   "set <date>",
	Short: "Set the next income date (YYYY-MM-DD)",
	Args:  cobra.ExactArgs(1),
	RunE:  runSet,
}

func init() {
	Cmd.AddCommand(setCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	next := app.NextPayday(context.Background())
	fmt.Printf("Gajian berikutnya: %s (%d hari lagi)\n",
		dateutils.ToISO(next), dateutils.DaysUntil(next, time.Now()))
	return nil
}

func runSet(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	if _, err := time.Parse(dateutils.LayoutISO, args[0]); err != nil {
		return errs.NewValidation("date", "must be YYYY-MM-DD")
	}
	if err := app.Store.SetSetting(context.Background(), store.SettingPayday, args[0]); err != nil {
		return err
	}
	fmt.Printf("Gajian berikutnya diatur ke %s.\n", args[0])
	return nil
}
