package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"listbox/internal/config"
	"listbox/internal/eventbus"
	"listbox/internal/ui"
)

func main() {
	// Parse command line arguments
	var configPath, logPath string
	flag.StringVar(&configPath, "config", "", "Config file (default ./"+config.FileName+")")
	flag.StringVar(&configPath, "c", "", "Config file (shorthand)")
	flag.StringVar(&logPath, "log", "listbox.log", "Log file")
	flag.Parse()

	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			fmt.Printf("Error getting current directory: %v\n", err)
			os.Exit(1)
		}
		configPath = filepath.Join(wd, config.FileName)
	}

	// Set up logging
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	bus := eventbus.New()
	defer bus.Close()

	configSvc := config.NewConfigServiceWithBus(bus)
	cfg, existing := loadOrCreateConfig(configSvc, configPath)

	bus.Subscribe(eventbus.EventChange, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ChangeEvent); ok {
			log.Printf("Change from %s: %v", event.Source, event.Value)
		}
	})

	// Persist the values the UI reports on exit
	saved := make(chan struct{}, 1)
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		defer func() {
			select {
			case saved <- struct{}{}:
			default:
			}
		}()
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			cfg.Single.Value = event.SingleValue
			cfg.Multiple.Values = event.MultipleValues
			if err := configSvc.SaveToPath(cfg, configPath); err != nil {
				log.Printf("Failed to save config: %v", err)
				bus.Publish(eventbus.ErrorEvent{Message: "Failed to save config", Err: err})
			} else {
				log.Printf("Config saved to %s", configPath)
			}
		}
	})

	log.Printf("Creating UI model...")
	uiModel := ui.NewModel(cfg, bus)
	uiModel.SetReadyMarker(os.Getenv("LISTBOX_E2E_TEST") == "1")

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Forward events the UI reports on
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	bus.Subscribe(eventbus.EventError, forward)
	bus.Subscribe(eventbus.EventConfigSaved, forward)

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	bus.Publish(eventbus.AppReadyEvent{HasExistingConfig: existing})

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")

	// Let the exit save finish before the bus goes away
	if cfg.UISettings.AutosaveOnExit {
		select {
		case <-saved:
		case <-time.After(2 * time.Second):
			log.Printf("Timed out waiting for config save")
		}
	}
}

// loadOrCreateConfig loads the config file or falls back to the demo defaults,
// writing them out when the file is missing
func loadOrCreateConfig(configSvc config.ConfigService, path string) (*config.Config, bool) {
	cfg, err := configSvc.LoadFromPath(path)
	if err == nil {
		log.Printf("Loaded config from %s", path)
		return cfg, true
	}

	cfg = config.DefaultConfig()
	if !errors.Is(err, config.ErrNotFound) {
		// Keep a broken file untouched for the user to fix
		log.Printf("Error loading config, using defaults: %v", err)
		return cfg, true
	}

	log.Printf("Creating new config at %s", path)
	if err := configSvc.SaveToPath(cfg, path); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg, false
}
