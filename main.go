package main

import (
	"errors"
	"flag"
	"fmt"
	"log"

	tea "github.com/charmbracelet/bubbletea"

	"runboard/internal/analysis"
	"runboard/internal/config"
	"runboard/internal/fitimport"
	"runboard/internal/service"
	"runboard/internal/store"
	"runboard/internal/tui"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	importDir := flag.String("import", "", "import all .fit files from this directory and exit")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nAn example config was written to:\n  %s/config.json\n\n", configDir)
		fmt.Println("Set your resting/max heart rate there, then re-run.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Validate config
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	// Open database
	db, err := store.Open()
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	if *importDir != "" {
		count, err := fitimport.ImportDir(db, *importDir)
		if err != nil {
			return fmt.Errorf("importing FIT files: %w", err)
		}
		total, _ := db.CountActivities()
		fmt.Printf("Imported %d activities (%d total in database).\n", count, total)
		return nil
	}

	// Create services
	querySvc := service.NewQueryService(db, zonesFromConfig(cfg))

	// Launch TUI
	app := tui.NewApp(db, querySvc, tui.NewUnits(cfg.Display))
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func zonesFromConfig(cfg *config.Config) analysis.HRZones {
	zones := analysis.DefaultZones()
	if cfg.Athlete.RestingHR > 0 {
		zones.RestingHR = cfg.Athlete.RestingHR
	}
	if cfg.Athlete.MaxHR > 0 {
		zones.MaxHR = cfg.Athlete.MaxHR
	}
	if cfg.Athlete.Sex == "female" {
		zones.Sex = analysis.Female
	}
	return zones
}
