package auth

import (
	"context"
	"testing"
	"time"

	"golang.org/x/oauth2"
)

// memTokenStore is an in-memory TokenStore for testing.
type memTokenStore struct {
	token *oauth2.Token
	saves int
}

func (m *memTokenStore) SaveToken(token *oauth2.Token) error {
	m.token = token
	m.saves++
	return nil
}

func (m *memTokenStore) LoadToken() (*oauth2.Token, error) {
	return m.token, nil
}

// staticTokenSource always returns the same token.
type staticTokenSource struct {
	token *oauth2.Token
}

func (s *staticTokenSource) Token() (*oauth2.Token, error) {
	return s.token, nil
}

func TestAuthenticatedClientReusesStoredToken(t *testing.T) {
	store := &memTokenStore{
		token: &oauth2.Token{
			AccessToken: "stored",
			Expiry:      time.Now().Add(time.Hour),
		},
	}

	prompt := func(authURL string) (string, error) {
		t.Fatal("interactive flow ran despite a stored token")
		return "", nil
	}

	client, err := AuthenticatedClient(
		context.Background(), &oauth2.Config{}, store, prompt,
	)
	if err != nil {
		t.Fatalf("AuthenticatedClient: %v", err)
	}
	if client == nil {
		t.Fatal("want a non-nil client")
	}
}

func TestAutoSaveTokenSourceSavesRefreshedToken(t *testing.T) {
	store := &memTokenStore{}
	old := &oauth2.Token{AccessToken: "old"}
	refreshed := &oauth2.Token{AccessToken: "new"}

	ts := &autoSaveTokenSource{
		source:     &staticTokenSource{token: refreshed},
		tokenStore: store,
		lastToken:  old,
	}

	got, err := ts.Token()
	if err != nil {
		t.Fatalf("Token: %v", err)
	}
	if got.AccessToken != "new" {
		t.Errorf("AccessToken = %q, want new", got.AccessToken)
	}
	if store.saves != 1 || store.token.AccessToken != "new" {
		t.Errorf("refreshed token was not persisted: saves=%d", store.saves)
	}

	// A second call with the same token must not save again.
	if _, err := ts.Token(); err != nil {
		t.Fatalf("Token: %v", err)
	}
	if store.saves != 1 {
		t.Errorf("unchanged token re-saved: saves=%d", store.saves)
	}
}
