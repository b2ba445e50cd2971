// Package google is the spreadsheet collaborator: OAuth against the Sheets
// API and raw row retrieval for the invoice generator.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// Auth manages the OAuth client: a cached token file when present, the
// browser flow with a localhost callback server otherwise.
type Auth struct {
	config    *oauth2.Config
	client    *http.Client
	tokenPath string
}

// NewAuth reads the OAuth client secret file and prepares the flow. No
// network traffic happens until SheetsService is called.
func NewAuth(credentialsPath, tokenPath, redirectURL string) (*Auth, error) {
	b, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read client secret file %q: %w", credentialsPath, err)
	}

	config, err := google.ConfigFromJSON(b, sheets.SpreadsheetsReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse client secret file: %w", err)
	}
	config.RedirectURL = redirectURL

	return &Auth{
		config:    config,
		tokenPath: tokenPath,
	}, nil
}

// SheetsService returns an authenticated Sheets API client, running the
// interactive browser flow on first use.
func (a *Auth) SheetsService(ctx context.Context) (*sheets.Service, error) {
	client, err := a.httpClient(ctx)
	if err != nil {
		return nil, err
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}
	return srv, nil
}

func (a *Auth) httpClient(ctx context.Context) (*http.Client, error) {
	if a.client != nil {
		return a.client, nil
	}

	tok, err := a.tokenFromFile()
	if err != nil {
		tok, err = a.tokenFromWeb(ctx)
		if err != nil {
			return nil, err
		}
		if err := a.saveToken(tok); err != nil {
			slog.Warn("could not cache oauth token", "path", a.tokenPath, "error", err)
		}
	}

	a.client = a.config.Client(ctx, tok)
	return a.client, nil
}

// tokenFromWeb runs the interactive flow: serve the callback locally, open
// the consent page in a browser, exchange the code for a token.
func (a *Auth) tokenFromWeb(ctx context.Context) (*oauth2.Token, error) {
	codeChan := make(chan string)

	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "no authorization code received", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, `<html><body><h1>Authentication successful</h1>`+
			`<p>You can close this window and return to the terminal.</p></body></html>`)
		codeChan <- code
	})

	server := &http.Server{Addr: callbackAddr(a.config.RedirectURL), Handler: mux}
	go func() {
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			slog.Error("oauth callback server", "error", err)
		}
	}()

	authURL := a.config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Opening browser for authentication...\n")
	fmt.Printf("If the browser does not open automatically, visit:\n%v\n", authURL)
	openBrowser(authURL)

	fmt.Println("Waiting for authentication...")
	var authCode string
	select {
	case authCode = <-codeChan:
	case <-ctx.Done():
		server.Close()
		return nil, ctx.Err()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	server.Shutdown(shutdownCtx)

	tok, err := a.config.Exchange(ctx, authCode)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return tok, nil
}

// callbackAddr extracts the listen address from a localhost redirect URL,
// falling back to :8080.
func callbackAddr(redirectURL string) string {
	if i := strings.LastIndex(redirectURL, "localhost:"); i >= 0 {
		rest := redirectURL[i+len("localhost:"):]
		if j := strings.IndexByte(rest, '/'); j >= 0 {
			rest = rest[:j]
		}
		if rest != "" {
			return ":" + rest
		}
	}
	return ":8080"
}

func (a *Auth) tokenFromFile() (*oauth2.Token, error) {
	f, err := os.Open(a.tokenPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, err
	}
	return tok, nil
}

func (a *Auth) saveToken(token *oauth2.Token) error {
	slog.Info("caching oauth token", "path", a.tokenPath)
	f, err := os.OpenFile(a.tokenPath, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	return json.NewEncoder(f).Encode(token)
}

// openBrowser tries to open the URL in the default browser.
func openBrowser(url string) {
	var err error
	switch runtime.GOOS {
	case "linux":
		err = exec.Command("xdg-open", url).Start()
	case "windows":
		err = exec.Command("rundll32", "url.dll,FileProtocolHandler", url).Start()
	case "darwin":
		err = exec.Command("open", url).Start()
	default:
		err = fmt.Errorf("unsupported platform")
	}
	if err != nil {
		slog.Warn("could not open browser", "error", err)
	}
}
