package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/digitaldrywood/invoicegen/internal/config"
	"github.com/digitaldrywood/invoicegen/internal/dates"
	"github.com/digitaldrywood/invoicegen/internal/document"
	"github.com/digitaldrywood/invoicegen/internal/google"
	"github.com/digitaldrywood/invoicegen/internal/invoice"
	"github.com/digitaldrywood/invoicegen/internal/ledger"
	"github.com/digitaldrywood/invoicegen/internal/template"
	"github.com/digitaldrywood/invoicegen/internal/workitems"
)

func main() {
	var (
		history = flag.Int("history", 0, "Print the N most recent runs and exit")
		dryRun  = flag.Bool("dry-run", false, "Fetch and summarize work items without writing documents")
	)
	flag.Parse()

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: invoicegen [flags] <config.json>")
		os.Exit(2)
	}

	// Optional .env next to the working directory; missing file is fine.
	_ = godotenv.Load()

	cfg, err := config.Load(flag.Arg(0))
	if err != nil {
		fatal(err)
	}

	if *history > 0 {
		if err := printHistory(cfg, *history); err != nil {
			fatal(err)
		}
		return
	}

	if err := run(context.Background(), cfg, *dryRun); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	slog.Error("invoice generation failed", "error", err)
	os.Exit(1)
}

func run(ctx context.Context, cfg *config.Config, dryRun bool) error {
	if err := cfg.ValidateSheet(); err != nil {
		return err
	}

	now := time.Now()
	triple := dates.Resolve(now)

	period, custom, err := cfg.Period()
	if err != nil {
		return err
	}
	if !custom {
		period = dates.LastMonthPeriod(now)
	}

	values := template.FromDates(triple)
	if custom {
		// A custom period replaces the default previous-month label.
		values.Set("[LAST_MONTH]", period.Display())
	}

	folderName := dates.FolderName(now)
	if custom {
		folderName = period.FolderName()
	}

	// The invoice folder is created here; the namer only validates it.
	outDir := filepath.Join(cfg.InvoiceFolder, folderName)
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create invoice folder %q: %w", outDir, err)
	}
	slog.Info("invoice folder ready", "path", outDir)

	outputPath, err := template.ResolveFilename(
		filepath.Join(outDir, filepath.Base(cfg.Template)), values)
	if err != nil {
		return err
	}

	sheetID, err := google.SpreadsheetIDFromURL(cfg.SpreadsheetURL)
	if err != nil {
		return err
	}
	auth, err := google.NewAuth(cfg.CredentialsPath, cfg.TokenPath, cfg.OAuthRedirectURL)
	if err != nil {
		return err
	}
	service, err := auth.SheetsService(ctx)
	if err != nil {
		return fmt.Errorf("authenticate with Google Sheets: %w", err)
	}
	client := google.NewSheetsClient(service, sheetID)

	slog.Info("fetching work items", "sheet", cfg.SheetName, "period", period.Display())
	rows, err := client.FetchRows(ctx, cfg.SheetName)
	if err != nil {
		return err
	}

	parser := workitems.NewParser(cfg.DateFormats)
	summary := parser.AggregatePeriod(rows, period)
	slog.Info("aggregated work items",
		"items", len(summary.Items),
		"total_hours", summary.TotalHours,
		"skipped_dates", summary.SkippedDates,
		"skipped_hours", summary.SkippedHours,
	)
	if len(summary.Items) == 0 {
		slog.Warn("no work items matched the billing period", "period", period.Display())
	}

	if dryRun {
		printSummary(summary, period)
		return nil
	}

	currency, rate, err := client.CurrencyAndRate(ctx, cfg.SheetName)
	if err != nil {
		return err
	}

	inv, err := invoice.Build(summary.TotalHours, currency, rate, cfg.VATEnabled())
	if err != nil {
		return err
	}
	for token, value := range inv.Tokens() {
		values.Set(token, value)
	}

	doc, err := document.RenderText(cfg.Template, values)
	if err != nil {
		return err
	}
	if doc.Replacements == 0 {
		slog.Warn("template contains no known placeholders", "template", cfg.Template)
	}

	if err := doc.WriteText(outputPath); err != nil {
		return err
	}

	pdfPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".pdf"
	if err := doc.WritePDF(pdfPath, summary.Items, inv); err != nil {
		return err
	}
	slog.Info("invoice generated", "document", outputPath, "pdf", pdfPath)

	if dest, err := document.CopyPDF(pdfPath, cfg.CopyInvoicePDFTo, folderName); err != nil {
		slog.Warn("PDF copy failed, PDF itself was created", "error", err)
	} else {
		slog.Info("PDF copied", "path", dest)
	}

	recordRun(cfg, ledger.Run{
		CreatedAt:  now,
		Period:     period.Display(),
		Items:      len(summary.Items),
		TotalHours: summary.TotalHours,
		OutputPath: outputPath,
	})

	return nil
}

// recordRun appends the run to the local history. Ledger trouble never
// fails a run that already produced the invoice.
func recordRun(cfg *config.Config, run ledger.Run) {
	l, err := ledger.Open(ledgerDir(cfg))
	if err != nil {
		slog.Warn("could not open run ledger", "error", err)
		return
	}
	defer l.Close()

	if err := l.Record(run); err != nil {
		slog.Warn("could not record run", "error", err)
	}
}

func printHistory(cfg *config.Config, n int) error {
	l, err := ledger.Open(ledgerDir(cfg))
	if err != nil {
		return err
	}
	defer l.Close()

	runs, err := l.Recent(n)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("No recorded runs.")
		return nil
	}

	fmt.Printf("%-20s %-28s %6s %8s  %s\n", "Generated", "Period", "Items", "Hours", "Output")
	for _, run := range runs {
		fmt.Printf("%-20s %-28s %6d %8.2f  %s\n",
			run.CreatedAt.Local().Format("2006-01-02 15:04"),
			run.Period, run.Items, run.TotalHours, run.OutputPath)
	}
	return nil
}

func ledgerDir(cfg *config.Config) string {
	return filepath.Join(cfg.InvoiceFolder, ".invoicegen")
}

func printSummary(summary workitems.Summary, period dates.Period) {
	fmt.Printf("\nWork items for %s:\n", period.Display())
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-12s %-20s %-36s %8s\n", "Date", "Topic", "Description", "Hours")
	fmt.Println(strings.Repeat("-", 80))
	for _, item := range summary.Items {
		fmt.Printf("%-12s %-20s %-36s %8.2f\n",
			item.Date.Format("2006-01-02"), item.Topic, item.Description, item.Hours)
	}
	fmt.Println(strings.Repeat("-", 80))
	fmt.Printf("%-70s %8.2f\n", "Total hours", summary.TotalHours)
	if summary.SkippedDates > 0 || summary.SkippedHours > 0 {
		fmt.Printf("Skipped rows: %d with unparsable dates, %d with invalid hours\n",
			summary.SkippedDates, summary.SkippedHours)
	}
}
