package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/dockly/family-planner/internal/app"
	"github.com/dockly/family-planner/internal/auth"
	"github.com/dockly/family-planner/internal/model"
	"github.com/dockly/family-planner/internal/source/google"
	"github.com/dockly/family-planner/internal/store"
)

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to the config file")
	dbPath := flag.String("db", defaultDBPath(), "path to the sqlite database")
	flag.Usage = printUsage
	flag.Parse()

	cfg, err := model.LoadConfig(*configPath)
	if err != nil {
		fatalf("loading config: %v", err)
	}

	if flag.Arg(0) == "connect" {
		if err := runConnect(cfg, flag.Arg(1)); err != nil {
			fatalf("%v", err)
		}
		return
	}

	s, err := store.NewSQLiteStore(*dbPath)
	if err != nil {
		fatalf("opening database: %v", err)
	}
	defer s.Close()

	if cfg.CurrentFamilyGroupID == "" {
		if err := bootstrapGroup(cfg, *configPath, s); err != nil {
			fatalf("creating family group: %v", err)
		}
	}

	program := tea.NewProgram(app.New(s, cfg), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fatalf("%v", err)
	}
}

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "dockly: "+format+"\n", args...)
	os.Exit(1)
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `Dockly family planner

USAGE:
    dockly [OPTIONS]                 Launch the planner
    dockly [OPTIONS] connect EMAIL   Authorize a Google account

OPTIONS:
    --config FILE    Config file (default %s)
    --db FILE        Database file (default %s)

Calendar accounts, Google OAuth client credentials, and display settings
live in the config file. Google accounts must be authorized once with
'dockly connect' before the planner can poll them.
`, model.DefaultConfigPath(), defaultDBPath())
}

func defaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dockly.db"
	}
	return filepath.Join(home, ".config", "dockly", "dockly.db")
}

// bootstrapGroup creates an initial family group on first run and
// persists it as the current selection.
func bootstrapGroup(cfg *model.AppConfig, configPath string, s store.Store) error {
	groups, err := s.GetFamilyGroups(context.Background())
	if err != nil {
		return err
	}

	if len(groups) > 0 {
		cfg.CurrentFamilyGroupID = groups[0].ID
	} else {
		id, err := s.CreateFamilyGroup(context.Background(), model.FamilyGroup{Name: "Family"})
		if err != nil {
			return err
		}
		cfg.CurrentFamilyGroupID = id
	}

	return model.SaveConfig(configPath, cfg)
}

// runConnect walks the interactive Google OAuth consent flow for one
// account and stores the resulting token in the system keyring.
func runConnect(cfg *model.AppConfig, email string) error {
	if email == "" {
		return fmt.Errorf("usage: dockly connect EMAIL")
	}
	if cfg.Google.ClientID == "" || cfg.Google.ClientSecret == "" {
		return fmt.Errorf("google client credentials are not configured")
	}

	found := false
	for _, ac := range cfg.Accounts {
		if ac.Email == email && ac.Provider == model.ProviderGoogle {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no google account %q in the config", email)
	}

	ctx := context.Background()
	tokenStore := auth.NewKeyringTokenStore(email)
	oauthConfig := auth.OAuthConfig(cfg.Google)

	httpClient, err := auth.AuthenticatedClient(ctx, oauthConfig, tokenStore, promptForCode)
	if err != nil {
		return fmt.Errorf("authorizing %s: %w", email, err)
	}

	client, err := google.NewClient(ctx, httpClient, email)
	if err != nil {
		return fmt.Errorf("google client: %w", err)
	}

	adapter := google.NewAdapter(client, email, "")
	summary, err := adapter.ValidateConnection(ctx)
	if err != nil {
		return fmt.Errorf("validating connection: %w", err)
	}

	fmt.Printf("Connected to %s (%s)\n", email, summary)
	return nil
}

func promptForCode(authURL string) (string, error) {
	fmt.Printf("Open the following URL in your browser and authorize access:\n\n%s\n\nAuthorization code: ", authURL)

	code, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(code), nil
}
