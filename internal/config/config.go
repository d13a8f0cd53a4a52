package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"github.com/whatsthemove/moveplan/internal/common"
)

// Config is the typed application configuration, populated from viper
// (config file plus MOVEPLAN_* environment variables).
type Config struct {
	Data     DataConfig
	Database DatabaseConfig
	OpenAI   OpenAIConfig
	Google   GoogleConfig
	Server   ServerConfig
	Scrape   ScrapeConfig
}

// DataConfig points at the CSV datasets the pricing models are fitted from.
type DataConfig struct {
	Tickets  string
	Rentals  string
	Cities   string
	Airports string
	Listings string
}

// DatabaseConfig locates the listings database.
type DatabaseConfig struct {
	Path string
}

// OpenAIConfig configures the job-posting classifier.
type OpenAIConfig struct {
	APIKey string
	Model  string
}

// GoogleConfig configures the listing-website enrichment search.
type GoogleConfig struct {
	APIKey string
	CSEID  string
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Address        string
	AllowedOrigins []string
	ReadTimeout    time.Duration
	WriteTimeout   time.Duration
}

// ScrapeConfig toggles the live truck/moving-help scraper.
type ScrapeConfig struct {
	Enabled bool
	BaseURL string
}

// SetDefaults registers defaults for every optional setting.
func SetDefaults() {
	viper.SetDefault("data.tickets", "~/.local/share/moveplan/tickets.csv")
	viper.SetDefault("data.rentals", "~/.local/share/moveplan/rentals.csv")
	viper.SetDefault("data.cities", "~/.local/share/moveplan/uscities.csv")
	viper.SetDefault("data.airports", "~/.local/share/moveplan/airports.csv")
	viper.SetDefault("data.listings", "~/.local/share/moveplan/listings.csv")
	viper.SetDefault("database.path", "~/.local/share/moveplan/listings.db")
	viper.SetDefault("openai.model", "gpt-4.1-mini")
	viper.SetDefault("server.address", ":8000")
	viper.SetDefault("server.allowed_origins", []string{
		"http://localhost:3000",
		"http://localhost:5173",
	})
	viper.SetDefault("server.read_timeout", 15*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)
	viper.SetDefault("scrape.enabled", false)
	viper.SetDefault("scrape.base_url", "")
}

// Load builds a Config from the current viper state, expanding ~ and
// environment variables in every path.
func Load() *Config {
	return &Config{
		Data: DataConfig{
			Tickets:  ExpandPath(viper.GetString("data.tickets")),
			Rentals:  ExpandPath(viper.GetString("data.rentals")),
			Cities:   ExpandPath(viper.GetString("data.cities")),
			Airports: ExpandPath(viper.GetString("data.airports")),
			Listings: ExpandPath(viper.GetString("data.listings")),
		},
		Database: DatabaseConfig{
			Path: ExpandPath(viper.GetString("database.path")),
		},
		OpenAI: OpenAIConfig{
			APIKey: viper.GetString("openai.api_key"),
			Model:  viper.GetString("openai.model"),
		},
		Google: GoogleConfig{
			APIKey: viper.GetString("google.api_key"),
			CSEID:  viper.GetString("google.cse_id"),
		},
		Server: ServerConfig{
			Address:        viper.GetString("server.address"),
			AllowedOrigins: viper.GetStringSlice("server.allowed_origins"),
			ReadTimeout:    viper.GetDuration("server.read_timeout"),
			WriteTimeout:   viper.GetDuration("server.write_timeout"),
		},
		Scrape: ScrapeConfig{
			Enabled: viper.GetBool("scrape.enabled"),
			BaseURL: viper.GetString("scrape.base_url"),
		},
	}
}

// Validate checks the settings every command needs. Commands with extra
// requirements (API keys) check those themselves.
func (c *Config) Validate() error {
	required := map[string]string{
		"data.tickets":  c.Data.Tickets,
		"data.rentals":  c.Data.Rentals,
		"data.cities":   c.Data.Cities,
		"data.airports": c.Data.Airports,
		"database.path": c.Database.Path,
	}
	for key, value := range required {
		if value == "" {
			return fmt.Errorf("%w: %s", common.ErrMissingConfig, key)
		}
	}
	return nil
}
