package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Source mode values for AppConfig.SourceMode.
const (
	SourceModeScrape = "scrape"
	SourceModeAPI    = "api"
	SourceModeAuto   = "auto"
)

// LineConfig points at the live times page of one rail line serving the station.
type LineConfig struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AppConfig holds all persistent settings for the departures backend
type AppConfig struct {
	StationName        string            `json:"station_name,omitempty"`
	HubToken           string            `json:"hub_token,omitempty"`
	Lines              []LineConfig      `json:"lines,omitempty"`
	APIEndpoint        string            `json:"api_endpoint,omitempty"`
	SourceMode         string            `json:"source_mode,omitempty"`
	PlatformDirections map[string]string `json:"platform_directions,omitempty"`
	Limit              int               `json:"limit,omitempty"`
	ListenAddr         string            `json:"listen_addr,omitempty"`
	MetricsAddr        string            `json:"metrics_addr,omitempty"`
	ProxyAPIKey        string            `json:"proxy_api_key,omitempty"`
	Timezone           string            `json:"timezone,omitempty"`
	AccentColor        string            `json:"accent_color,omitempty"`
}

// getConfigPath returns the absolute path to ~/.qpdepartures.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".qpdepartures.json"), nil
}

// Load reads the configuration from disk, fills in defaults and applies
// environment overrides. A missing config file is not an error.
func Load() (*AppConfig, error) {
	// Pick up a local .env first so overrides work in development too
	_ = godotenv.Load()

	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	cfg := &AppConfig{}

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	cfg.applyDefaults()

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// applyEnvOverrides lets deployment environments override the file settings
// without editing it. Secrets like the proxy key normally arrive this way.
func (cfg *AppConfig) applyEnvOverrides() {
	if v := os.Getenv("DEPARTURES_LISTEN_ADDR"); v != "" {
		cfg.ListenAddr = v
	}
	if v := os.Getenv("DEPARTURES_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("DEPARTURES_SOURCE_MODE"); v != "" {
		cfg.SourceMode = v
	}
	if v := os.Getenv("DEPARTURES_HUB_TOKEN"); v != "" {
		cfg.HubToken = v
	}
	if v := os.Getenv("SCRAPER_PROXY_KEY"); v != "" {
		cfg.ProxyAPIKey = v
	}
}

func (cfg *AppConfig) applyDefaults() {
	if cfg.StationName == "" {
		cfg.StationName = "Queens Park Stn"
	}
	if cfg.HubToken == "" {
		cfg.HubToken = "Perth"
	}
	if len(cfg.Lines) == 0 {
		cfg.Lines = []LineConfig{
			{
				Name: "Armadale",
				URL:  "https://www.transperth.wa.gov.au/Timetables/Live-Train-Times?line=Armadale%20Line&station=Queens%20Park%20Stn",
			},
			{
				Name: "Thornlie-Cockburn",
				URL:  "https://www.transperth.wa.gov.au/Timetables/Live-Train-Times?line=Thornlie-Cockburn%20Line&station=Queens%20Park%20Stn",
			},
		}
	}
	if cfg.APIEndpoint == "" {
		cfg.APIEndpoint = "https://www.transperth.wa.gov.au/API/LiveTrainTimes?station=Queens%20Park%20Stn"
	}
	if cfg.SourceMode == "" {
		cfg.SourceMode = SourceModeScrape
	}
	if cfg.Limit <= 0 {
		cfg.Limit = 10
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.Timezone == "" {
		cfg.Timezone = "Australia/Perth"
	}
}

// Location resolves the configured timezone, which anchors wall-clock
// departure times like "10:45".
func (cfg *AppConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", cfg.Timezone, err)
	}
	return loc, nil
}
