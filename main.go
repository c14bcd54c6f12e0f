package main

import (
	"fmt"
	"os"

	"github.com/rygrffth/cashflow/cmd/budget"
	"github.com/rygrffth/cashflow/cmd/cash"
	"github.com/rygrffth/cashflow/cmd/export"
	"github.com/rygrffth/cashflow/cmd/goal"
	"github.com/rygrffth/cashflow/cmd/ingest"
	"github.com/rygrffth/cashflow/cmd/payday"
	"github.com/rygrffth/cashflow/cmd/receivable"
	recordcmd "github.com/rygrffth/cashflow/cmd/record"
	recurringcmd "github.com/rygrffth/cashflow/cmd/recurring"
	"github.com/rygrffth/cashflow/cmd/report"
	"github.com/rygrffth/cashflow/cmd/root"
	"github.com/rygrffth/cashflow/internal/config"
)

func init() {
	// Load environment variables silently before any logging happens.
	config.LoadEnv()

	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(recordcmd.Cmd)
	root.Cmd.AddCommand(ingest.Cmd)
	root.Cmd.AddCommand(recurringcmd.Cmd)
	root.Cmd.AddCommand(receivable.Cmd)
	root.Cmd.AddCommand(goal.Cmd)
	root.Cmd.AddCommand(cash.Cmd)
	root.Cmd.AddCommand(budget.Cmd)
	root.Cmd.AddCommand(payday.Cmd)
	root.Cmd.AddCommand(export.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
