package googleauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/gmail/v1"
)

// Scopes requested for the polling account.
var Scopes = []string{
	gmail.GmailModifyScope,
	calendar.CalendarEventsScope,
}

// TokenUpdateFunc is called whenever the access token is refreshed.
type TokenUpdateFunc func(*oauth2.Token) error

type notifyTokenSource struct {
	mu       sync.Mutex
	src      oauth2.TokenSource
	current  *oauth2.Token
	callback TokenUpdateFunc
}

func (s *notifyTokenSource) Token() (*oauth2.Token, error) {
	t, err := s.src.Token()
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.callback != nil && (s.current == nil || s.current.AccessToken != t.AccessToken) {
		s.current = t
		if err := s.callback(t); err != nil {
			log.Printf("[OAuth] Failed to persist refreshed token: %v", err)
		}
	}
	return t, nil
}

// Options describe how to obtain the account's OAuth token.
type Options struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	TokenFile    string
}

// NewHTTPClient returns an OAuth client shared by the Gmail and Calendar
// services. The token comes from TokenFile when present, otherwise from
// RefreshToken; refreshed tokens are written back to TokenFile.
func NewHTTPClient(ctx context.Context, opts Options) (*http.Client, error) {
	if opts.ClientID == "" || opts.ClientSecret == "" {
		return nil, errors.New("google client id and secret are required")
	}

	token, err := LoadToken(opts.TokenFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	if token == nil {
		if opts.RefreshToken == "" {
			return nil, fmt.Errorf("no token file at %q and GOOGLE_REFRESH_TOKEN is empty", opts.TokenFile)
		}
		token = &oauth2.Token{RefreshToken: opts.RefreshToken, TokenType: "Bearer"}
	}

	config := &oauth2.Config{
		ClientID:     opts.ClientID,
		ClientSecret: opts.ClientSecret,
		Endpoint:     google.Endpoint,
		Scopes:       Scopes,
	}

	wrapped := &notifyTokenSource{
		src:     config.TokenSource(ctx, token),
		current: token,
	}
	if opts.TokenFile != "" {
		wrapped.callback = func(t *oauth2.Token) error {
			return SaveToken(opts.TokenFile, t)
		}
	}

	return oauth2.NewClient(ctx, wrapped), nil
}

// LoadToken reads a JSON-encoded token. A missing file yields os.ErrNotExist.
func LoadToken(path string) (*oauth2.Token, error) {
	if path == "" {
		return nil, os.ErrNotExist
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("failed to parse token file %s: %w", path, err)
	}
	return &token, nil
}

// SaveToken writes the token as JSON with owner-only permissions.
func SaveToken(path string, token *oauth2.Token) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token dir: %w", err)
	}
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("failed to encode token: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}
