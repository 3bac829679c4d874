// Command pagesplit splits multi-page PDFs into one named file per page.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"github.com/custodia-labs/pagesplit/internal/adapters/driven/config/file"
	"github.com/custodia-labs/pagesplit/internal/adapters/driven/engine/poppler"
	"github.com/custodia-labs/pagesplit/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/pagesplit/internal/adapters/driven/watch/fsnotify"
	"github.com/custodia-labs/pagesplit/internal/adapters/driving/cli"
	"github.com/custodia-labs/pagesplit/internal/core/domain"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driven"
	"github.com/custodia-labs/pagesplit/internal/core/ports/driving"
	"github.com/custodia-labs/pagesplit/internal/core/services"
	"github.com/custodia-labs/pagesplit/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

func run() error {
	_ = godotenv.Load()

	home, err := homeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}

	configStore, err := file.NewConfigStore(home)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: loading config: %v\n", err)
		return err
	}
	settingsService := services.NewSettingsService(configStore)

	settings, err := settingsService.Get()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: reading settings: %v\n", err)
		return err
	}

	var runStore driven.RunStore
	if settings.History {
		store, err := sqlite.NewStore(filepath.Join(home, "data"))
		if err != nil {
			logger.Warn("run history disabled: %v", err)
		} else {
			defer store.Close()
			runStore = store.RunStore()
		}
	}

	engine, err := poppler.New(poppler.Options{
		ToolDir:  os.Getenv("PAGESPLIT_POPPLER_PATH"),
		TextMode: settings.TextMode,
	})
	if err != nil {
		logger.Warn("%v, using %s", err, domain.TextModePdftotext)
		engine, err = poppler.New(poppler.Options{ToolDir: os.Getenv("PAGESPLIT_POPPLER_PATH")})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return err
		}
	}

	splitService := services.NewSplitService(engine, runStore, services.SplitConfig{
		Separator: settings.SeparatorRune(),
		Collision: settings.Collision,
	})

	// A nil store must reach the CLI as a nil interface.
	var historyService driving.HistoryService
	if runStore != nil {
		historyService = services.NewHistoryService(runStore)
	}

	cli.SetServices(cli.Services{
		Split:    splitService,
		Rules:    services.NewRuleService(file.NewRuleFile()),
		History:  historyService,
		Settings: settingsService,
		Watch:    services.NewWatchService(fsnotify.New(0), splitService),
	})
	cli.SetVersion(version)

	return cli.Execute()
}

// homeDir returns $PAGESPLIT_HOME, falling back to ~/.pagesplit.
func homeDir() (string, error) {
	if dir, ok := os.LookupEnv("PAGESPLIT_HOME"); ok && dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".pagesplit"), nil
}
