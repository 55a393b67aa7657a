package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockly/family-planner/internal/auth"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/source/google"
	"github.com/dockly/family-planner/internal/source/ics"
)

// sourcesRegisteredMsg is sent once the configured calendar sources have
// been wired into the poller.
type sourcesRegisteredMsg struct {
	err error
}

// registerSources builds a calendar source per enabled account and
// registers it with the poller. Dockly accounts have nothing to poll but
// are still saved to the accounts table; the picker and person colors are
// built from it. Google accounts without a stored token are skipped; they
// need the interactive connect command first.
func (m Model) registerSources() tea.Cmd {
	cfg := m.cfg
	s := m.store
	poller := m.poller
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()

		var accounts []model.ConnectedAccount
		var skipped []string

		for _, ac := range cfg.Accounts {
			if !ac.Enabled {
				continue
			}

			switch ac.Provider {
			case model.ProviderDockly:
				// Nothing to poll; the account is still upserted below.

			case model.ProviderICS:
				poller.RegisterSource(ics.NewAdapter(ac.FeedURL, ac.Email, ac.Color), ac)

			case model.ProviderGoogle:
				tokenStore := auth.NewKeyringTokenStore(ac.Email)
				token, err := tokenStore.LoadToken()
				if err != nil {
					return sourcesRegisteredMsg{err: fmt.Errorf("loading token for %s: %w", ac.Email, err)}
				}
				if token == nil {
					skipped = append(skipped, ac.Email)
					continue
				}

				oauthConfig := auth.OAuthConfig(cfg.Google)
				httpClient, err := auth.AuthenticatedClient(ctx, oauthConfig, tokenStore, nil)
				if err != nil {
					return sourcesRegisteredMsg{err: fmt.Errorf("authorizing %s: %w", ac.Email, err)}
				}

				client, err := google.NewClient(ctx, httpClient, ac.Email)
				if err != nil {
					return sourcesRegisteredMsg{err: fmt.Errorf("google client for %s: %w", ac.Email, err)}
				}
				poller.RegisterSource(google.NewAdapter(client, ac.Email, ac.Color), ac)

			default:
				continue
			}

			accounts = append(accounts, model.ConnectedAccount{
				UserName:      ac.DisplayName,
				Email:         ac.Email,
				Provider:      ac.Provider,
				DisplayName:   ac.DisplayName,
				Color:         ac.Color,
				FamilyGroupID: ac.FamilyGroupID,
			})
		}

		if len(accounts) > 0 {
			if err := s.UpsertAccounts(ctx, accounts); err != nil {
				return sourcesRegisteredMsg{err: fmt.Errorf("saving accounts: %w", err)}
			}
		}

		if len(skipped) > 0 {
			return sourcesRegisteredMsg{
				err: fmt.Errorf("not connected: %s (run 'dockly connect')", strings.Join(skipped, ", ")),
			}
		}
		return sourcesRegisteredMsg{}
	}
}
