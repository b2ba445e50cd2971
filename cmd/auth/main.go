// Command auth runs the one-time OAuth browser flow, caches the token and
// verifies access to the configured spreadsheet.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/digitaldrywood/invoicegen/internal/config"
	"github.com/digitaldrywood/invoicegen/internal/google"
)

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))

	if len(os.Args) != 2 {
		fmt.Fprintln(os.Stderr, "usage: auth <config.json>")
		os.Exit(2)
	}

	_ = godotenv.Load()

	cfg, err := config.Load(os.Args[1])
	if err != nil {
		fatal(err)
	}
	if err := cfg.ValidateSheet(); err != nil {
		fatal(err)
	}

	auth, err := google.NewAuth(cfg.CredentialsPath, cfg.TokenPath, cfg.OAuthRedirectURL)
	if err != nil {
		fatal(err)
	}

	ctx := context.Background()

	// Triggers the browser flow when no token is cached yet.
	service, err := auth.SheetsService(ctx)
	if err != nil {
		fatal(err)
	}

	sheetID, err := google.SpreadsheetIDFromURL(cfg.SpreadsheetURL)
	if err != nil {
		fatal(err)
	}

	spreadsheet, err := service.Spreadsheets.Get(sheetID).Context(ctx).Do()
	if err != nil {
		fatal(fmt.Errorf("access spreadsheet: %w", err))
	}

	fmt.Println("Authentication successful!")
	fmt.Printf("Connected to spreadsheet: %s\n", spreadsheet.Properties.Title)
	fmt.Println("Available sheets:")
	for _, sheet := range spreadsheet.Sheets {
		marker := "  "
		if sheet.Properties.Title == cfg.SheetName {
			marker = "* "
		}
		fmt.Printf("  %s%s\n", marker, sheet.Properties.Title)
	}
	fmt.Println()
	fmt.Println("You can now generate invoices:")
	fmt.Printf("  invoicegen %s\n", os.Args[1])
}

func fatal(err error) {
	slog.Error("authentication failed", "error", err)
	os.Exit(1)
}
