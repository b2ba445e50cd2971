package google

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/api/sheets/v4"
)

// Work item rows live in columns A-D; the currency and hourly rate sit in
// E1 and E2 of the same sheet.
const (
	workItemRange = "A:D"
	rateRange     = "E1:E2"
)

var spreadsheetIDPattern = regexp.MustCompile(`/spreadsheets/d/([a-zA-Z0-9-_]+)`)

// SpreadsheetIDFromURL extracts the spreadsheet ID from a Google Sheets URL.
func SpreadsheetIDFromURL(url string) (string, error) {
	m := spreadsheetIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", fmt.Errorf("could not extract spreadsheet ID from URL %q", url)
	}
	return m[1], nil
}

// SheetsClient reads invoice data from one spreadsheet.
type SheetsClient struct {
	service       *sheets.Service
	spreadsheetID string
}

func NewSheetsClient(service *sheets.Service, spreadsheetID string) *SheetsClient {
	return &SheetsClient{
		service:       service,
		spreadsheetID: spreadsheetID,
	}
}

// FetchRows returns every row of the named sheet's work item columns, cells
// stringified. Transient API failures are retried with backoff.
func (s *SheetsClient) FetchRows(ctx context.Context, sheetName string) ([][]string, error) {
	resp, err := s.getValues(ctx, sheetName, workItemRange)
	if err != nil {
		return nil, fmt.Errorf("fetch rows from sheet %q: %w", sheetName, err)
	}

	rows := make([][]string, 0, len(resp.Values))
	for _, raw := range resp.Values {
		row := make([]string, len(raw))
		for i, cell := range raw {
			row[i] = fmt.Sprint(cell)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// CurrencyAndRate reads the invoice currency from E1 and the hourly rate
// from E2.
func (s *SheetsClient) CurrencyAndRate(ctx context.Context, sheetName string) (string, float64, error) {
	resp, err := s.getValues(ctx, sheetName, rateRange)
	if err != nil {
		return "", 0, fmt.Errorf("read currency and rate from sheet %q: %w", sheetName, err)
	}

	currency := strings.TrimSpace(cellString(resp.Values, 0))
	if currency == "" {
		return "", 0, fmt.Errorf("cell E1 (currency) is empty in sheet %q", sheetName)
	}

	rateStr := strings.TrimSpace(cellString(resp.Values, 1))
	if rateStr == "" {
		return "", 0, fmt.Errorf("cell E2 (hourly rate) is empty in sheet %q", sheetName)
	}
	rate, err := strconv.ParseFloat(rateStr, 64)
	if err != nil {
		return "", 0, fmt.Errorf("invalid hourly rate in cell E2: %q", rateStr)
	}

	return currency, rate, nil
}

func (s *SheetsClient) getValues(ctx context.Context, sheetName, cellRange string) (*sheets.ValueRange, error) {
	var resp *sheets.ValueRange
	backoff := retry.WithMaxRetries(3, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		var err error
		resp, err = s.service.Spreadsheets.Values.
			Get(s.spreadsheetID, sheetName+"!"+cellRange).
			Context(ctx).Do()
		if err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func cellString(values [][]interface{}, row int) string {
	if len(values) > row && len(values[row]) > 0 {
		return fmt.Sprint(values[row][0])
	}
	return ""
}
