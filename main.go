package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	tea "github.com/charmbracelet/bubbletea"

	"photogrid/internal/config"
	"photogrid/internal/eventbus"
	"photogrid/internal/flickr"
	"photogrid/internal/share"
	"photogrid/internal/ui"
)

var version = "dev"

// CLI holds the command line flags
type CLI struct {
	Config      string           `help:"Path to the config file." type:"path" placeholder:"FILE"`
	APIKey      string           `help:"Flickr API key (overrides config and $FLICKR_API_KEY)." name:"api-key"`
	Columns     int              `help:"Thumbnails per row." default:"0"`
	ShareTarget string           `help:"Where shared photos go (directory or clipboard)." name:"share"`
	ShareDir    string           `help:"Directory shared photos are saved to." name:"share-dir" type:"path"`
	NoColor     bool             `help:"Disable colour thumbnails."`
	LogFile     string           `help:"Log file." default:"photogrid.log" type:"path"`
	Version     kong.VersionFlag `help:"Show version."`

	Query []string `arg:"" optional:"" name:"query" help:"Initial search."`
}

// Validate is called by kong after parsing
func (c *CLI) Validate() error {
	switch c.ShareTarget {
	case "", "directory", "clipboard":
	default:
		return fmt.Errorf("unknown share target %q", c.ShareTarget)
	}
	if c.Columns < 0 {
		return fmt.Errorf("columns must be positive")
	}
	return nil
}

// apply copies flag overrides into cfg
func (c *CLI) apply(cfg *config.Config) {
	if key := strings.TrimSpace(c.APIKey); key != "" {
		cfg.Flickr.APIKey = key
	}
	if c.Columns > 0 {
		cfg.Grid.Columns = c.Columns
	}
	if c.ShareTarget != "" {
		cfg.Share.Target = c.ShareTarget
	}
	if c.ShareDir != "" {
		cfg.Share.Directory = c.ShareDir
	}
	if c.NoColor || os.Getenv("NO_COLOR") != "" {
		cfg.UISettings.Color = false
	}
}

func main() {
	var cli CLI
	kong.Parse(&cli,
		kong.Name("photogrid"),
		kong.Description("Search Flickr and browse the results as a photo grid."),
		kong.Vars{"version": version},
		kong.UsageOnError(),
	)

	// Set up logging
	logFile, err := os.OpenFile(cli.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		cancel()
	}()

	configSvc := config.NewConfigService()
	if cli.Config != "" {
		configSvc = config.NewConfigServiceAt(cli.Config)
	}
	cfg := loadOrCreateConfig(configSvc)
	cfg.ApplyEnv()
	cli.apply(cfg)
	cfg.Normalize()

	client, err := flickr.NewClient(cfg.Flickr, nil)
	if err != nil {
		fmt.Printf("Error creating Flickr client: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	sharer, err := share.New(cfg.Share)
	if err != nil {
		fmt.Printf("Error configuring sharing: %v\n", err)
		os.Exit(1)
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	uiModel := ui.NewModel(ctx, cfg, bus, client, sharer)
	uiModel.SetInitialQuery(strings.Join(cli.Query, " "))

	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithContext(ctx))
	uiModel.SetProgram(p)

	// Forward events to the UI for the status line
	eventChan := make(chan eventbus.DomainEvent, 100)
	forward := func(e eventbus.DomainEvent) {
		select {
		case eventChan <- e:
		default:
			log.Println("Event channel full, dropping event")
		}
	}
	for _, eventType := range []eventbus.EventType{
		eventbus.EventSearchCompleted,
		eventbus.EventSearchFailed,
		eventbus.EventLargeImageFailed,
		eventbus.EventPhotoMoved,
		eventbus.EventSharingChanged,
		eventbus.EventShareCompleted,
	} {
		bus.Subscribe(eventType, forward)
	}

	go func() {
		for event := range eventChan {
			p.Send(ui.EventMsg{Event: event})
		}
	}()

	log.Printf("Starting UI...")
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		log.Printf("Error running program: %v", err)
		fmt.Printf("Error running program: %v\n", err)
		os.Exit(1)
	}
	log.Printf("UI exited normally")
}

// loadOrCreateConfig loads the config file, writing the defaults on first run
func loadOrCreateConfig(configSvc config.ConfigService) *config.Config {
	path := configSvc.Path()
	if _, err := os.Stat(path); err == nil {
		cfg, err := configSvc.LoadFromPath(path)
		if err == nil {
			log.Printf("Loaded config from %s", path)
			return cfg
		}
		log.Printf("Error loading config: %v", err)
		return config.DefaultConfig()
	}

	log.Printf("Creating new config at %s", path)
	cfg := config.DefaultConfig()
	if err := configSvc.Save(cfg); err != nil {
		log.Printf("Failed to save config: %v", err)
	}
	return cfg
}
