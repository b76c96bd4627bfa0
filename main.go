package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"codeview/internal/config"
	"codeview/internal/domain"
	"codeview/internal/editor"
	"codeview/internal/eventbus"
	"codeview/internal/pattern"
	"codeview/internal/searcher"
	"codeview/internal/spell"
	"codeview/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath string
	var dictPath string
	flag.StringVar(&configPath, "config", "", "Path to config file")
	flag.StringVar(&dictPath, "dict", "", "Extra dictionary word list to train")
	flag.Parse()

	var docPath string
	if flag.NArg() > 0 {
		docPath = flag.Arg(0)
	}

	// Set up logging
	logFile, err := os.OpenFile("codeview.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create event bus
	bus := eventbus.New()

	// Load configuration with event bus support
	configSvc := config.NewConfigServiceWithBus(bus)
	cfg := loadOrCreateConfig(configSvc, configPath)

	// Initialize services
	patterns := pattern.NewCache(pattern.DefaultCacheSize)
	checker := spell.NewChecker(bus)
	if dictPath == "" {
		dictPath = cfg.DictionaryPath
	}
	if dictPath != "" {
		if err := checker.LoadDictionary(dictPath); err != nil {
			log.Printf("Failed to load dictionary %s: %v", dictPath, err)
		}
	}
	scanner := spell.NewScanner(checker, patterns)

	buf := editor.NewBuffer(bus)
	search := searcher.NewService(buf, patterns, scanner, bus)

	if docPath != "" {
		absPath, err := filepath.Abs(docPath)
		if err == nil {
			docPath = absPath
		}
		if err := buf.Open(docPath); err != nil {
			fmt.Printf("Error opening %s: %v\n", docPath, err)
			os.Exit(1)
		}
	}

	// Create event channel for UI
	eventChan := make(chan domain.DomainEvent, 100)

	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}

	// Forward the notification events the UI reacts to
	bus.Subscribe(eventbus.EventSearchWrapped, forward)
	bus.Subscribe(eventbus.EventReplaceAllCompleted, forward)
	bus.Subscribe(eventbus.EventFileSaved, forward)
	bus.Subscribe(eventbus.EventDictionaryLoaded, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Save config automatically when dictionary words are added
	bus.Subscribe(eventbus.EventWordAdded, func(e eventbus.DomainEvent) {
		if err := configSvc.Save(cfg); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
	})

	// Create UI model
	log.Printf("Creating UI model...")
	uiModel := ui.New(buf, search, checker, patterns, cfg, eventChan)

	// Create Bubble Tea program
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)

	// Run the UI
	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Cleanup
	close(eventChan)
}

// loadOrCreateConfig loads config from the given path, or from the
// default location, creating it when missing.
func loadOrCreateConfig(configSvc config.ConfigService, path string) *config.Config {
	if path != "" {
		if cfg, err := configSvc.LoadFromPath(path); err == nil {
			log.Printf("Loaded config from %s", path)
			return cfg
		}
		log.Printf("Creating new config at %s", path)
		cfg := config.DefaultConfig()
		if err := configSvc.SaveToPath(cfg, path); err != nil {
			log.Printf("Failed to save config: %v", err)
		}
		return cfg
	}

	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		return config.DefaultConfig()
	}
	return cfg
}
