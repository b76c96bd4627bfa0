package main

import (
	"fmt"
	"log"
	"os"

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
	// Set up logging
	logFile, err := os.OpenFile("codeview.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Load configuration
	configSvc := config.NewConfigService()
	cfg, err := configSvc.Load()
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// Create event bus
	bus := eventbus.New()

	// Initialize services
	patterns := pattern.NewCache(pattern.DefaultCacheSize)
	checker := spell.NewChecker(bus)
	if cfg.DictionaryPath != "" {
		if err := checker.LoadDictionary(cfg.DictionaryPath); err != nil {
			log.Printf("Failed to load dictionary: %v", err)
		}
	}
	scanner := spell.NewScanner(checker, patterns)
	buf := editor.NewBuffer(bus)
	search := searcher.NewService(buf, patterns, scanner, bus)

	if len(os.Args) > 1 {
		if err := buf.Open(os.Args[1]); err != nil {
			fmt.Printf("Error opening %s: %v\n", os.Args[1], err)
			os.Exit(1)
		}
	}

	// Set up event forwarding to UI
	eventChan := make(chan domain.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventSearchWrapped, forward)
	bus.Subscribe(eventbus.EventReplaceAllCompleted, forward)
	bus.Subscribe(eventbus.EventFileSaved, forward)
	bus.Subscribe(eventbus.EventError, forward)

	// Create UI model and run
	uiModel := ui.New(buf, search, checker, patterns, cfg, eventChan)
	p := tea.NewProgram(uiModel, tea.WithAltScreen())
	uiModel.SetProgram(p)
	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}

	close(eventChan)
}
