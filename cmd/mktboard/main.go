package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	aiservice "github.com/lfreitas/mktboard/internal/ai"
	"github.com/lfreitas/mktboard/internal/app"
	"github.com/lfreitas/mktboard/internal/credential"
	"github.com/lfreitas/mktboard/internal/intake"
	"github.com/lfreitas/mktboard/internal/model"
	"github.com/lfreitas/mktboard/internal/state"
	"github.com/lfreitas/mktboard/internal/store"
	"github.com/lfreitas/mktboard/internal/sweep"
)

var version = "dev"

func main() {
	configPath := flag.String("config", model.DefaultConfigPath(), "path to config file")
	showVersion := flag.Bool("version", false, "print version and exit")
	setGeminiKey := flag.Bool("set-gemini-key", false, "store the Gemini API key in the system keyring and exit")
	setIMAPPassword := flag.Bool("set-imap-password", false, "store the intake mailbox password in the system keyring and exit")
	clearCredentials := flag.Bool("clear-credentials", false, "remove stored credentials from the system keyring and exit")
	flag.Parse()

	if *showVersion {
		fmt.Printf("mktboard %s\n", version)
		return
	}

	var err error
	switch {
	case *setGeminiKey:
		err = storeCredential(credential.KeyGeminiAPI, "Gemini API key")
	case *setIMAPPassword:
		err = storeCredential(credential.KeyIMAPPassword, "Mailbox password")
	case *clearCredentials:
		err = removeCredentials()
	default:
		err = run(*configPath)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "mktboard: %v\n", err)
		os.Exit(1)
	}
}

// storeCredential reads one secret from stdin and saves it under the
// given keyring key.
func storeCredential(key, label string) error {
	fmt.Printf("%s: ", label)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("reading %s: %w", label, err)
	}

	value := strings.TrimSpace(line)
	if value == "" {
		return fmt.Errorf("empty %s, nothing stored", label)
	}
	if err := credential.Set(key, value); err != nil {
		return fmt.Errorf("storing %s: %w", label, err)
	}

	fmt.Println("Stored in the system keyring.")
	return nil
}

func removeCredentials() error {
	for _, key := range []string{credential.KeyGeminiAPI, credential.KeyIMAPPassword} {
		if err := credential.Delete(key); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("credential not removed")
			continue
		}
		fmt.Printf("Removed %s.\n", key)
	}
	return nil
}

func run(configPath string) error {
	cfg, err := model.LoadConfig(configPath)
	if err != nil {
		return err
	}

	logFile, err := setupLogging(cfg.LogPath)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	log.Info().Str("version", version).Msg("starting mktboard")

	s := state.New()

	var db *store.SQLiteStore
	if cfg.DatabasePath != "" {
		db, err = store.NewSQLiteStore(cfg.DatabasePath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		defer db.Close()
	}

	if err := restoreSession(s, db); err != nil {
		return err
	}

	sweeper := sweep.New(s, time.Duration(cfg.Timer.SweepIntervalSec)*time.Second)
	root := app.New(s, loadAssistant(cfg), loadImporter(cfg, s), sweeper)

	program := tea.NewProgram(root, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running UI: %w", err)
	}

	if db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := db.SaveSnapshot(ctx, s.Snapshot()); err != nil {
			return fmt.Errorf("saving session: %w", err)
		}
		log.Info().Msg("session saved")
	}

	return nil
}

// setupLogging routes zerolog to a file. The TUI owns the terminal, so
// logging to stderr would corrupt the display.
func setupLogging(path string) (*os.File, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			// No home, no log file. Discard instead of fighting the TUI.
			log.Logger = zerolog.Nop()
			return nil, nil
		}
		path = filepath.Join(home, ".config", "mktboard", "mktboard.log")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating log directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening log file %s: %w", path, err)
	}

	log.Logger = zerolog.New(f).With().Timestamp().Logger()
	zerolog.TimeFieldFormat = time.RFC3339
	return f, nil
}

// restoreSession fills the store from the database snapshot, falling
// back to seed data on first run or when persistence is disabled.
func restoreSession(s *state.Store, db *store.SQLiteStore) error {
	if db == nil {
		s.Restore(state.Seed())
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	snap, err := db.LoadSnapshot(ctx)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if snap == nil {
		log.Info().Msg("empty database, seeding demo data")
		s.Restore(state.Seed())
		return nil
	}

	s.Restore(*snap)
	return nil
}

// loadAssistant builds the AI assistant if a Gemini key is available
// from the environment or the system keyring.
func loadAssistant(cfg *model.AppConfig) *aiservice.Assistant {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		key, err := credential.Get(credential.KeyGeminiAPI)
		if err != nil {
			log.Debug().Err(err).Msg("no Gemini key in keyring")
			return nil
		}
		apiKey = key
	}
	if apiKey == "" {
		return nil
	}
	return aiservice.New(apiKey, cfg.AI.Model, cfg.AI.MaxTokens)
}

// loadImporter builds the mailbox importer when intake is configured.
func loadImporter(cfg *model.AppConfig, s *state.Store) *intake.Importer {
	if cfg.Intake.Host == "" {
		return nil
	}

	password := os.Getenv("MKTBOARD_IMAP_PASSWORD")
	if password == "" {
		p, err := credential.Get(credential.KeyIMAPPassword)
		if err != nil {
			log.Warn().Err(err).Msg("intake configured but no mailbox password available")
			return nil
		}
		password = p
	}

	client := intake.NewIMAPClient(
		cfg.Intake.Host, cfg.Intake.Port,
		cfg.Intake.Username, password, cfg.Intake.TLS,
	)
	return intake.NewImporter(s, client, cfg.Intake.FetchLimit)
}
