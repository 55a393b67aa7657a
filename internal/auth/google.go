package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/99designs/keyring"
	"golang.org/x/oauth2"
	googleoauth "golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/dockly/family-planner/internal/credential"
	"github.com/dockly/family-planner/internal/model"
)

// TokenStore saves and loads OAuth tokens for one account.
type TokenStore interface {
	SaveToken(token *oauth2.Token) error
	LoadToken() (*oauth2.Token, error)
}

// KeyringTokenStore persists tokens in the system keyring, one entry
// per connected account.
type KeyringTokenStore struct {
	account string
}

// NewKeyringTokenStore creates a token store scoped to the given
// account email.
func NewKeyringTokenStore(account string) *KeyringTokenStore {
	return &KeyringTokenStore{account: account}
}

func (s *KeyringTokenStore) key() string {
	return "google-token-" + s.account
}

// SaveToken stores the token as JSON in the keyring.
func (s *KeyringTokenStore) SaveToken(token *oauth2.Token) error {
	data, err := json.Marshal(token)
	if err != nil {
		return fmt.Errorf("marshaling token: %w", err)
	}
	return credential.Set(s.key(), string(data))
}

// LoadToken reads the stored token. A missing entry returns (nil, nil)
// so the caller can fall through to the interactive flow.
func (s *KeyringTokenStore) LoadToken() (*oauth2.Token, error) {
	data, err := credential.Get(s.key())
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var token oauth2.Token
	if err := json.Unmarshal([]byte(data), &token); err != nil {
		return nil, fmt.Errorf("unmarshaling stored token: %w", err)
	}
	return &token, nil
}

// DeleteToken removes the stored token, for account disconnects.
func (s *KeyringTokenStore) DeleteToken() error {
	return credential.Delete(s.key())
}

// OAuthConfig builds the oauth2 configuration for read-only calendar
// access.
func OAuthConfig(cfg model.GoogleConfig) *oauth2.Config {
	return &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     googleoauth.Endpoint,
		RedirectURL:  "urn:ietf:wg:oauth:2.0:oob",
		Scopes:       []string{calendarapi.CalendarReadonlyScope},
	}
}

// autoSaveTokenSource wraps an oauth2.TokenSource and persists refreshed
// tokens as they appear.
type autoSaveTokenSource struct {
	source     oauth2.TokenSource
	tokenStore TokenStore
	lastToken  *oauth2.Token
}

// Token implements oauth2.TokenSource and saves the token if it was
// refreshed.
func (a *autoSaveTokenSource) Token() (*oauth2.Token, error) {
	token, err := a.source.Token()
	if err != nil {
		return nil, err
	}

	if a.lastToken == nil || a.lastToken.AccessToken != token.AccessToken {
		if err := a.tokenStore.SaveToken(token); err != nil {
			return nil, fmt.Errorf("saving refreshed token: %w", err)
		}
		a.lastToken = token
	}

	return token, nil
}

// CodePrompt asks the user for the authorization code shown after they
// visit the consent URL.
type CodePrompt func(authURL string) (string, error)

// AuthenticatedClient returns an HTTP client authorized for the account.
// A stored token is reused and refreshed transparently; when none exists
// the prompt runs the interactive consent flow once.
func AuthenticatedClient(
	ctx context.Context,
	oauthConfig *oauth2.Config,
	tokenStore TokenStore,
	prompt CodePrompt,
) (*http.Client, error) {
	token, err := tokenStore.LoadToken()
	if err != nil {
		return nil, fmt.Errorf("loading token: %w", err)
	}

	if token == nil {
		authURL := oauthConfig.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
		code, err := prompt(authURL)
		if err != nil {
			return nil, fmt.Errorf("reading authorization code: %w", err)
		}

		token, err = oauthConfig.Exchange(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("exchanging authorization code: %w", err)
		}

		if err := tokenStore.SaveToken(token); err != nil {
			return nil, fmt.Errorf("saving token: %w", err)
		}
	}

	tokenSource := &autoSaveTokenSource{
		source:     oauth2.ReuseTokenSource(token, oauthConfig.TokenSource(ctx, token)),
		tokenStore: tokenStore,
		lastToken:  token,
	}

	return oauth2.NewClient(ctx, tokenSource), nil
}
