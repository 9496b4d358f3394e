package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gsheets "google.golang.org/api/sheets/v4"
)

const authPort = "8973"

// oauthConfig builds the oauth2 config from a downloaded credentials.json,
// forcing the redirect onto our localhost callback port.
func oauthConfig(credentialsPath string) (*oauth2.Config, error) {
	raw, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials file %s: %w", credentialsPath, err)
	}

	config, err := google.ConfigFromJSON(raw, gsheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("parse credentials file: %w", err)
	}

	config.RedirectURL = fmt.Sprintf("http://localhost:%s/oauth2callback", authPort)
	return config, nil
}

// client returns an authenticated HTTP client from the cached token.
// A missing token is an instruction to run `sprout auth` first.
func client(ctx context.Context, credentialsPath, tokenPath string) (*http.Client, error) {
	config, err := oauthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}

	tok, err := tokenFromFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("no cached token at %s (run `sprout auth` first): %w", tokenPath, err)
	}

	return config.Client(ctx, tok), nil
}

// Authorize runs the installed-app OAuth flow: prints the consent URL,
// captures the redirect on a local listener, exchanges the code, and caches
// the token at tokenPath.
func Authorize(ctx context.Context, credentialsPath, tokenPath string) error {
	config, err := oauthConfig(credentialsPath)
	if err != nil {
		return err
	}

	codeCh := make(chan string, 1)
	errCh := make(chan error, 1)

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth2callback", func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			errCh <- fmt.Errorf("authorization redirect carried no code")
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		fmt.Fprintln(w, "Authorized. You can close this tab and return to the terminal.")
		codeCh <- code
	})

	listener, err := net.Listen("tcp", "localhost:"+authPort)
	if err != nil {
		return fmt.Errorf("listen for oauth callback: %w", err)
	}

	server := &http.Server{Handler: mux}
	go func() {
		if serveErr := server.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			errCh <- serveErr
		}
	}()
	defer func() { _ = server.Shutdown(context.Background()) }()

	// AccessTypeOffline so we get a refresh token back.
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline, oauth2.SetAuthURLParam("prompt", "consent"))
	fmt.Printf("Open the following URL in your browser to authorize sprout:\n%s\n", authURL)

	select {
	case code := <-codeCh:
		exchangeCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		tok, err := config.Exchange(exchangeCtx, code)
		if err != nil {
			return fmt.Errorf("exchange authorization code: %w", err)
		}
		return saveToken(tokenPath, tok)
	case err := <-errCh:
		return err
	case <-time.After(5 * time.Minute):
		return fmt.Errorf("authorization timed out")
	case <-ctx.Done():
		return ctx.Err()
	}
}

func tokenFromFile(path string) (*oauth2.Token, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	tok := &oauth2.Token{}
	if err := json.NewDecoder(f).Decode(tok); err != nil {
		return nil, fmt.Errorf("decode token file %s: %w", path, err)
	}
	return tok, nil
}

func saveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}

	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("create token file: %w", err)
	}
	defer func() { _ = f.Close() }()

	return json.NewEncoder(f).Encode(token)
}
