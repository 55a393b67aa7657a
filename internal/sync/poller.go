package sync

import (
	"context"
	"fmt"
	gosync "sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/planner"
	"github.com/dockly/family-planner/internal/source"
	"github.com/dockly/family-planner/internal/store"
)

// SyncState represents the current state of a source sync operation.
type SyncState int

const (
	SyncIdle SyncState = iota
	SyncRunning
	SyncError
)

// SyncStatus holds the sync state for a single connected account.
type SyncStatus struct {
	AccountID string
	Provider  model.Provider
	State     SyncState
	LastSync  time.Time
	Error     error
}

// SyncResultMsg is a tea.Msg sent when a fetch for one account completes.
type SyncResultMsg struct {
	AccountID  string
	Provider   model.Provider
	EventCount int
	Error      error
	AuthError  *AuthErrorMsg
}

// AuthErrorMsg is a tea.Msg sent when a source rejects its credentials.
type AuthErrorMsg struct {
	AccountID string
	Provider  model.Provider
	Message   string
}

// fetchTimeout is the maximum time allowed for a single fetch operation.
const fetchTimeout = 30 * time.Second

// sourceEntry holds a registered source, its account configuration, and
// the channel that requests an immediate poll of this account.
type sourceEntry struct {
	src     source.Source
	cfg     model.AccountConfig
	trigger chan struct{}
}

// accountID derives the stable identifier used for statuses and triggers.
func (e sourceEntry) accountID() string {
	return e.src.AccountEmail() + "-" + string(e.src.Provider())
}

// Poller polls every connected calendar account in the background and
// replaces the account's cached events in the store after each fetch.
// Fetched payloads are normalized before they are stored; nothing
// downstream ever sees a provider-shaped record.
type Poller struct {
	store      store.Store
	windowDays int
	sources    []sourceEntry
	statuses   map[string]*SyncStatus
	resultCh   chan SyncResultMsg
	stopCh     chan struct{}
	mu         gosync.Mutex
	running    bool
}

// New creates a Poller over the given store. windowDays bounds the fetch
// window in each direction around now.
func New(s store.Store, windowDays int) *Poller {
	return &Poller{
		store:      s,
		windowDays: windowDays,
		statuses:   make(map[string]*SyncStatus),
		resultCh:   make(chan SyncResultMsg, 16),
		stopCh:     make(chan struct{}),
	}
}

// RegisterSource adds a calendar source and its account configuration.
// Each account gets its own trigger channel so a targeted refresh cannot
// be consumed by another account's polling goroutine.
func (p *Poller) RegisterSource(src source.Source, cfg model.AccountConfig) {
	p.mu.Lock()
	defer p.mu.Unlock()

	entry := sourceEntry{src: src, cfg: cfg, trigger: make(chan struct{}, 1)}
	p.sources = append(p.sources, entry)
	p.statuses[entry.accountID()] = &SyncStatus{
		AccountID: entry.accountID(),
		Provider:  src.Provider(),
		State:     SyncIdle,
	}
}

// Start returns a tea.Cmd that starts all polling goroutines and
// subscribes to results. The returned command waits on the result
// channel and returns SyncResultMsg messages to the Bubble Tea runtime.
func (p *Poller) Start() tea.Cmd {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = true
	p.mu.Unlock()

	for _, entry := range p.sources {
		go p.pollSource(entry)
	}

	return p.waitForResult()
}

// Stop halts all polling goroutines.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.running {
		return
	}

	close(p.stopCh)
	p.running = false
}

// RefreshAll triggers an immediate poll of every registered account.
func (p *Poller) RefreshAll() tea.Cmd {
	p.mu.Lock()
	sources := make([]sourceEntry, len(p.sources))
	copy(sources, p.sources)
	p.mu.Unlock()

	for _, entry := range sources {
		select {
		case entry.trigger <- struct{}{}:
		default:
			// A refresh is already pending for this account
		}
	}

	return nil
}

// RefreshAccount triggers an immediate poll of a single account.
func (p *Poller) RefreshAccount(accountID string) tea.Cmd {
	p.mu.Lock()
	defer p.mu.Unlock()

	for _, entry := range p.sources {
		if entry.accountID() != accountID {
			continue
		}
		select {
		case entry.trigger <- struct{}{}:
		default:
		}
		return nil
	}
	return nil
}

// GetStatuses returns the current sync status of all registered accounts.
func (p *Poller) GetStatuses() []SyncStatus {
	p.mu.Lock()
	defer p.mu.Unlock()

	statuses := make([]SyncStatus, 0, len(p.statuses))
	for _, s := range p.statuses {
		statuses = append(statuses, *s)
	}
	return statuses
}

// pollSource runs the polling loop for a single account.
func (p *Poller) pollSource(entry sourceEntry) {
	interval := time.Duration(entry.cfg.PollIntervalSec) * time.Second
	if interval <= 0 {
		interval = 300 * time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	id := entry.accountID()

	// Do an initial fetch immediately
	p.fetchAndStore(entry, id)

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			p.fetchAndStore(entry, id)
		case <-entry.trigger:
			p.fetchAndStore(entry, id)
		}
	}
}

// fetchAndStore performs a single fetch, normalizes the payload, swaps
// the account's cached events in the store, and reports the result.
func (p *Poller) fetchAndStore(entry sourceEntry, id string) {
	p.setStatus(id, SyncRunning, nil)

	ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
	defer cancel()

	window := source.WindowAround(time.Now(), p.windowDays)
	raw, err := entry.src.FetchEvents(ctx, window)
	if err != nil {
		p.setStatus(id, SyncError, err)

		if source.IsAuthError(err) {
			p.sendResult(SyncResultMsg{
				AccountID: id,
				Provider:  entry.src.Provider(),
				Error:     err,
				AuthError: &AuthErrorMsg{
					AccountID: id,
					Provider:  entry.src.Provider(),
					Message: fmt.Sprintf(
						"%s: authentication expired. Press 'c' to reconnect.",
						entry.cfg.Email,
					),
				},
			})
			return
		}

		p.sendResult(SyncResultMsg{
			AccountID: id,
			Provider:  entry.src.Provider(),
			Error:     err,
		})
		return
	}

	events := planner.NormalizeAll(raw)
	for i := range events {
		events[i].FamilyGroupID = entry.cfg.FamilyGroupID
	}

	err = p.store.ReplaceProviderEvents(
		ctx, entry.src.Provider(), entry.src.AccountEmail(), events,
	)
	if err != nil {
		p.setStatus(id, SyncError, err)
		p.sendResult(SyncResultMsg{
			AccountID: id,
			Provider:  entry.src.Provider(),
			Error:     err,
		})
		return
	}

	p.setStatus(id, SyncIdle, nil)
	p.sendResult(SyncResultMsg{
		AccountID:  id,
		Provider:   entry.src.Provider(),
		EventCount: len(events),
	})
}

// setStatus updates the sync status for an account.
func (p *Poller) setStatus(id string, state SyncState, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, ok := p.statuses[id]
	if !ok {
		return
	}

	status.State = state
	status.Error = err
	if state == SyncIdle && err == nil {
		status.LastSync = time.Now()
	}
}

// sendResult sends a SyncResultMsg on the result channel without blocking.
func (p *Poller) sendResult(msg SyncResultMsg) {
	select {
	case p.resultCh <- msg:
	default:
		// Drop if channel is full to avoid blocking the poller
	}
}

// waitForResult returns a tea.Cmd that waits for the next result from
// the result channel.
func (p *Poller) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-p.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next sync result.
// This should be called after processing a SyncResultMsg to continue
// listening for future results.
func (p *Poller) WaitForNextResult() tea.Cmd {
	return p.waitForResult()
}
