// Package report implements the balance and daily-limit report command.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/ledger"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/receivable"
)

var simulateSpend int64

// Cmd is the report command.
var Cmd = &cobra.Command{
	Use:   "report",
	Short: "Show balances, windowed spend and the daily limit",
	RunE:  run,
}

func init() {
	Cmd.Flags().Int64Var(&simulateSpend, "simulate", 0,
		"Simulate spending this amount today (pure projection, nothing is committed)")
}

func run(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	ctx := context.Background()
	engine, err := app.Engine(ctx)
	if err != nil {
		return err
	}

	if simulateSpend > 0 {
		return printSimulation(engine, decimal.NewFromInt(simulateSpend))
	}
	return printReport(ctx, app, engine)
}

func printReport(ctx context.Context, app *common.App, engine *ledger.Engine) error {
	fmt.Println("=== Saldo ===")
	fmt.Printf("Bank             : %s\n", currencyutils.FormatRupiah(engine.BankBalance()))
	fmt.Printf("Total Aset       : %s\n", currencyutils.FormatRupiah(engine.TotalAssets()))
	fmt.Printf("Dana Operasional : %s\n", currencyutils.FormatRupiah(engine.OperationalFloat()))

	fmt.Println("\n=== Pengeluaran ===")
	day := engine.WindowedSpend(ledger.WindowDay)
	week := engine.WindowedSpend(ledger.WindowWeek)
	month := engine.WindowedSpend(ledger.WindowMonth)
	fmt.Printf("Hari ini   : %s (Bank %s / Cash %s)\n",
		currencyutils.FormatRupiah(day.Total),
		currencyutils.FormatRupiah(day.Bank),
		currencyutils.FormatRupiah(day.Cash))
	fmt.Printf("Minggu ini : %s\n", currencyutils.FormatRupiah(week.Total))
	fmt.Printf("Bulan ini  : %s\n", currencyutils.FormatRupiah(month.Total))

	proj := engine.MonthProjection()
	fmt.Printf("Rata-rata  : %s per hari, proyeksi %s\n",
		currencyutils.FormatRupiah(proj.AveragePerDay),
		currencyutils.FormatRupiah(proj.MonthEnd))

	fmt.Println("\n=== Batas Harian ===")
	fmt.Printf("Sisa hari  : %d\n", engine.DaysRemaining())
	fmt.Printf("Batas      : %s\n", currencyutils.FormatRupiah(engine.DailyLimit()))

	if pending, nextDue := engine.PendingSettlementTotal(); pending.IsPositive() {
		fmt.Println("\n=== Tagihan Tertunda ===")
		fmt.Printf("Total      : %s\n", currencyutils.FormatRupiah(pending))
		if nextDue != "" {
			fmt.Printf("Jatuh tempo: %s\n", nextDue)
		}
	}

	overdue, err := receivable.NewTracker(app.Store, app.Log).Overdue(ctx, time.Now())
	if err != nil {
		app.Log.WithError(err).Warn("Failed to check overdue receivables")
	} else if len(overdue) > 0 {
		fmt.Println("\n=== Piutang Telat ===")
		for _, r := range overdue {
			fmt.Printf("%-20s %s (jatuh tempo %s)\n",
				r.Debtor, currencyutils.FormatRupiah(r.Amount), r.DueDate)
		}
	}

	app.Log.Debug("Report rendered",
		logging.F(logging.FieldOperation, "report"))
	return nil
}

func printSimulation(engine *ledger.Engine, spend decimal.Decimal) error {
	sim := engine.Simulate(spend)
	fmt.Println("=== Simulasi ===")
	fmt.Printf("Batas harian    : %s\n", currencyutils.FormatRupiah(sim.DailyLimit))
	fmt.Printf("Belanja         : %s (%.1f%%)\n", currencyutils.FormatRupiah(sim.Spend), sim.PercentUsed)
	fmt.Printf("Sisa hari ini   : %s\n", currencyutils.FormatRupiah(sim.Remaining))
	fmt.Printf("Batas besok     : %s\n", currencyutils.FormatRupiah(sim.NextDayLimit))
	return nil
}
