// Command refast is the launcher entry point. It wires the driven
// adapters into the search pipeline and hands control to the CLI.
package main

import (
	"fmt"
	"os"

	"github.com/itsharex/ReFast-sub000/internal/adapters/driven/appindex"
	"github.com/itsharex/ReFast-sub000/internal/adapters/driven/config/file"
	"github.com/itsharex/ReFast-sub000/internal/adapters/driven/indexservice"
	"github.com/itsharex/ReFast-sub000/internal/adapters/driven/storage/memory"
	"github.com/itsharex/ReFast-sub000/internal/adapters/driven/storage/sqlite"
	"github.com/itsharex/ReFast-sub000/internal/adapters/driving/cli"
	"github.com/itsharex/ReFast-sub000/internal/core/ports/driven"
	"github.com/itsharex/ReFast-sub000/internal/core/services"
	"github.com/itsharex/ReFast-sub000/internal/logger"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	config, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	if logFile := config.GetString("log.file"); logFile != "" {
		logger.SetFile(logFile)
	}

	// Persistence. A broken database degrades to in-memory stores so
	// the launcher still searches; only history and usage are lost.
	var history driven.FileHistoryStore
	var usage driven.UsageStore
	store, err := sqlite.NewStore(config.GetString("data.dir"))
	if err != nil {
		logger.Warn("sqlite unavailable, history will not persist: %v", err)
		history = memory.NewFileHistoryStore()
		usage = memory.NewUsageStore()
	} else {
		defer store.Close()
		history = store.FileHistoryStore()
		usage = store.UsageStore()
	}

	// Application catalogue.
	var apps driven.AppIndex
	if dirs := config.GetStringSlice("apps.dirs"); len(dirs) > 0 {
		scanner := appindex.NewScanner(dirs)
		defer scanner.Close()
		apps = scanner
	} else {
		apps = memory.NewAppIndex()
	}

	// External volume index.
	baseURL := config.GetString("index_service.url")
	if baseURL == "" {
		baseURL = indexservice.DefaultBaseURL
	}
	session := services.NewSessionManager(indexservice.NewClient(baseURL))

	sources := []services.Source{
		services.NewAppSource(apps),
		services.NewHistorySource(history),
		services.NewFolderSource(memory.NewFolderIndex(memory.DefaultFolders()...)),
		services.NewNoteSource(memory.NewNoteStore()),
		services.NewPluginSource(memory.NewPluginRegistry()),
	}

	controller := services.NewController(sources, session, usage, history)
	defer controller.Close()

	cli.SetSearchController(controller)
	return cli.Execute()
}
