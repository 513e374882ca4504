package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"marquee/internal/catalog"
	"marquee/internal/config"
	"marquee/internal/history"
	"marquee/internal/log"
	"marquee/internal/search"
	"marquee/internal/tmdb"
	"marquee/internal/tui"
	"marquee/internal/tui/styles"
)

// Version is set at build time via -ldflags
var Version = "dev"

// clearSpinnerLine clears the spinner line from the terminal
const clearSpinnerLine = "\r                                    \r"

func main() {
	// Handle version flag
	var showVersion bool
	flag.BoolVar(&showVersion, "v", false, "print version")
	flag.BoolVar(&showVersion, "version", false, "print version")
	flag.Parse()

	if showVersion {
		fmt.Printf("marquee %s\n", Version)
		return
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger, err := log.Setup(cfg.Logging.File, cfg.Logging.Level)
	if err != nil {
		// Fall back to null logger if file logging fails
		logger = log.Null()
	}
	slog.SetDefault(logger)

	logger.Info("starting marquee", "version", Version)

	// Check if configured
	if !cfg.IsConfigured() {
		return runSetupFlow(cfg)
	}

	baseURL := cfg.TMDB.BaseURL
	if baseURL == "" {
		baseURL = tmdb.DefaultBaseURL
	}
	client := tmdb.NewClient(baseURL, cfg.TMDB.APIKey, logger)

	// Watch history is best-effort; the app runs without it
	store, err := history.NewStore(cfg.HistoryDir())
	if err != nil {
		logger.Warn("watch history unavailable", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	catalogSvc := catalog.NewService(client, logger)
	index := search.NewIndex(logger)

	model := tui.NewModel(
		catalogSvc,
		client,
		store,
		index,
		cfg.History.Limit,
		cfg.Preferences.RecordHistory,
		logger,
	)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	logger.Info("starting TUI")

	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		return fmt.Errorf("TUI error: %w", err)
	}

	logger.Info("shutting down")
	return nil
}

// runSetupFlow handles the initial setup when no API key is configured
func runSetupFlow(cfg *config.Config) error {
	fmt.Println()
	fmt.Println("Welcome to Marquee!")
	fmt.Println()
	fmt.Println("Marquee needs a TMDB API key (themoviedb.org → Settings → API).")
	fmt.Println()

	var apiKey string
	for {
		fmt.Print("Enter your TMDB API key: ")
		input, err := term.ReadPassword(int(os.Stdin.Fd()))
		fmt.Println()
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
		apiKey = strings.TrimSpace(string(input))

		if apiKey == "" {
			fmt.Println("API key cannot be empty. Please try again.")
			continue
		}

		fmt.Println()
		if err := validateKeyWithSpinner(cfg, apiKey); err != nil {
			fmt.Printf("\n✗ Could not verify API key: %v\n", err)
			fmt.Println("Please check the key and try again.")
			fmt.Println()
			continue
		}
		break
	}

	cfg.TMDB.APIKey = apiKey
	if err := config.SaveConfig(cfg); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Println()
	fmt.Println("✓ Configuration saved!")
	fmt.Println()
	fmt.Println("Run marquee again to start the application.")

	return nil
}

// validateKeyWithSpinner verifies the API key with a visual spinner
func validateKeyWithSpinner(cfg *config.Config, apiKey string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	baseURL := cfg.TMDB.BaseURL
	if baseURL == "" {
		baseURL = tmdb.DefaultBaseURL
	}
	client := tmdb.NewClient(baseURL, apiKey, log.Null())

	resultCh := make(chan error, 1)
	go func() {
		_, err := client.GenreList(ctx)
		resultCh <- err
	}()

	frame := 0
	fmt.Printf("\r%s Verifying API key...", styles.SpinnerFrames[frame])

	ticker := time.NewTicker(80 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case err := <-resultCh:
			fmt.Print(clearSpinnerLine)
			if err != nil {
				return err
			}
			fmt.Println("✓ API key verified")
			return nil

		case <-ticker.C:
			frame++
			fmt.Printf("\r%s Verifying API key...", styles.SpinnerFrames[frame%len(styles.SpinnerFrames)])

		case <-ctx.Done():
			fmt.Print(clearSpinnerLine)
			return fmt.Errorf("verification timed out")
		}
	}
}
