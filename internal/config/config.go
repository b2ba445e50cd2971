// Package config loads the invoice run configuration: the JSON file passed
// on the command line plus the Google settings taken from the environment.
// Everything a collaborator needs is resolved here once; nothing reads the
// environment mid-run.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/digitaldrywood/invoicegen/internal/dates"
)

// Error is fatal configuration trouble. The run aborts with a non-zero exit
// and the message as-is.
type Error struct {
	msg string
}

func (e *Error) Error() string { return e.msg }

// Errorf builds a configuration error.
func Errorf(format string, args ...any) *Error {
	return &Error{msg: fmt.Sprintf(format, args...)}
}

const periodLayout = "2006-01-02"

type Config struct {
	// JSON config file keys. Unknown keys are ignored.
	Template         string   `json:"template"`
	InvoiceFolder    string   `json:"invoice_folder"`
	CopyInvoicePDFTo string   `json:"copy_invoice_PDF_to_folder"`
	SheetName        string   `json:"GSheet"`
	VAT              *bool    `json:"VAT"`
	PeriodFrom       string   `json:"period_from"`
	PeriodTo         string   `json:"period_to"`
	DateFormats      []string `json:"date_formats"`

	// Environment-derived Google settings.
	SpreadsheetURL   string `json:"-"`
	CredentialsPath  string `json:"-"`
	TokenPath        string `json:"-"`
	OAuthRedirectURL string `json:"-"`
}

// Load reads the JSON config file and fills in the environment-derived
// settings with their defaults.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, Errorf("config file %q: %v", path, err)
	}

	cfg := &Config{}
	if err := json.Unmarshal(b, cfg); err != nil {
		return nil, Errorf("config file %q is not valid JSON: %v", path, err)
	}

	cfg.SpreadsheetURL = os.Getenv("GOOGLE_DOC_LINK")
	cfg.CredentialsPath = os.Getenv("GOOGLE_CREDENTIALS_PATH")
	cfg.TokenPath = os.Getenv("GOOGLE_TOKEN_PATH")
	cfg.OAuthRedirectURL = os.Getenv("GOOGLE_OAUTH_REDIRECT_URL")

	if cfg.CredentialsPath == "" {
		cfg.CredentialsPath = ".local/credentials.json"
	}
	if cfg.TokenPath == "" {
		cfg.TokenPath = ".local/token.json"
	}
	if cfg.OAuthRedirectURL == "" {
		cfg.OAuthRedirectURL = "http://localhost:8080/callback"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks the required keys and cross-field rules.
func (c *Config) Validate() error {
	if c.Template == "" {
		return Errorf("'template' not found in config file")
	}
	if c.InvoiceFolder == "" {
		return Errorf("'invoice_folder' not found in config file")
	}
	if c.CopyInvoicePDFTo == "" {
		return Errorf("'copy_invoice_PDF_to_folder' not found in config file")
	}
	if c.SheetName == "" {
		return Errorf("'GSheet' not found in config file")
	}
	if (c.PeriodFrom == "") != (c.PeriodTo == "") {
		return Errorf("period_from and period_to must be set together")
	}
	return nil
}

// ValidateSheet checks the settings needed to reach the spreadsheet.
// Commands that never touch the sheet, like history printing, skip it.
func (c *Config) ValidateSheet() error {
	if c.SpreadsheetURL == "" {
		return Errorf("GOOGLE_DOC_LINK environment variable is not set")
	}
	return nil
}

// Period parses the optional custom billing period. The second return is
// false when the config does not override the default last-month target.
func (c *Config) Period() (dates.Period, bool, error) {
	if c.PeriodFrom == "" {
		return dates.Period{}, false, nil
	}

	from, err := time.Parse(periodLayout, c.PeriodFrom)
	if err != nil {
		return dates.Period{}, false, Errorf("period_from %q: expected YYYY-MM-DD", c.PeriodFrom)
	}
	to, err := time.Parse(periodLayout, c.PeriodTo)
	if err != nil {
		return dates.Period{}, false, Errorf("period_to %q: expected YYYY-MM-DD", c.PeriodTo)
	}

	p, err := dates.NewPeriod(from, to)
	if err != nil {
		return dates.Period{}, false, Errorf("%v", err)
	}
	return p, true, nil
}

// VATEnabled reports whether the invoice applies VAT. A missing key means
// disabled.
func (c *Config) VATEnabled() bool {
	return c.VAT != nil && *c.VAT
}
