// Package ingest implements the two-step email import flow: fetch candidates
// into a review file, then commit the reviewed file.
package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/rygrffth/cashflow/cmd/common"
	"github.com/rygrffth/cashflow/internal/categorizer"
	"github.com/rygrffth/cashflow/internal/currencyutils"
	"github.com/rygrffth/cashflow/internal/importer"
	"github.com/rygrffth/cashflow/internal/ingest"
	"github.com/rygrffth/cashflow/internal/logging"
	"github.com/rygrffth/cashflow/internal/mailbox"
)

// Cmd is the ingest command group.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Import transactions from bank notification emails",
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch candidates from the mailbox into the review file",
	RunE:  runFetch,
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Commit the (possibly edited) review file into the ledger",
	RunE:  runImport,
}

func init() {
	Cmd.AddCommand(fetchCmd)
	Cmd.AddCommand(importCmd)
}

func runFetch(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	mailCfg := app.Cfg.Mail
	mb := mailbox.NewIMAP(mailCfg.Server, mailCfg.Username, mailCfg.Password,
		time.Duration(mailCfg.TimeoutSeconds)*time.Second)
	ing := ingest.NewIngestor(mb, app.Log, mailCfg.Sender, mailCfg.Limit)

	candidates, err := ing.Fetch(time.Now())
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println("Tidak ada transaksi baru.")
		return nil
	}

	cat, err := categorizer.LoadFile(app.Cfg.Ingest.CategoriesFile, app.Log)
	if err != nil {
		return err
	}
	cat.Apply(candidates)

	reviewPath := app.Cfg.Ingest.ReviewFile
	if err := importer.WriteReviewFile(reviewPath, candidates); err != nil {
		return err
	}

	fmt.Printf("%d kandidat ditulis ke %s\n", len(candidates), reviewPath)
	for _, c := range candidates {
		fmt.Printf("%s  %-10s %-12s %s  %s\n",
			c.Date, c.Direction, currencyutils.FormatRupiah(c.Amount), c.Category, c.Note)
	}
	fmt.Println("Periksa berkas tersebut, lalu jalankan `cashflow ingest import`.")
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	app, err := common.Open()
	if err != nil {
		return err
	}
	defer app.Close()

	candidates, err := importer.ReadReviewFile(app.Cfg.Ingest.ReviewFile)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		fmt.Println("Berkas review kosong.")
		return nil
	}

	imp := importer.NewImporter(app.Store, app.Log)
	res, err := imp.Import(context.Background(), candidates)
	if err != nil {
		return err
	}

	app.Log.Info("Review file imported",
		logging.F(logging.FieldFile, app.Cfg.Ingest.ReviewFile),
		logging.F(logging.FieldCount, res.Inserted))
	fmt.Printf("Masuk: %d, duplikat dilewati: %d\n", res.Inserted, res.Skipped)
	return nil
}
