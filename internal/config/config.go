package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server struct {
		Addr string `yaml:"addr" validate:"required"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Fred struct {
		APIKey string `yaml:"api_key"`
	} `yaml:"fred"`
	Macro struct {
		SetVersion  string          `yaml:"set_version" validate:"oneof=v12 v16"`
		RefreshCron string          `yaml:"refresh_cron"` // empty disables auto-refresh
		Defaults    map[string]bool `yaml:"defaults"`     // per-indicator verdicts used when a source is unreachable
	} `yaml:"macro"`
	Strategy struct {
		VetoCutoff int `yaml:"veto_cutoff" validate:"gte=0,lte=100"`
		MinBars    int `yaml:"min_bars" validate:"gte=0"`
		FetchDays  int `yaml:"fetch_days" validate:"gte=0"`
	} `yaml:"strategy"`
	Sizing struct {
		Capital         float64 `yaml:"capital" validate:"gte=0"`
		RiskPct         float64 `yaml:"risk_pct" validate:"gte=0,lte=100"`
		RoundLotSize    int64   `yaml:"round_lot_size" validate:"gte=0"`
		OddLotThreshold float64 `yaml:"odd_lot_threshold" validate:"gte=0"`
	} `yaml:"sizing"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"` // empty disables the recorder
	} `yaml:"database"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
	} `yaml:"telegram"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies environment variable
// overrides and defaults. A missing file is not an error; env overrides
// and defaults alone can fully configure the service.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("ADJUTANT_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("FRED_API_KEY"); v != "" {
		cfg.Fred.APIKey = v
	}
	if v := os.Getenv("TELEGRAM_BOT_TOKEN"); v != "" {
		cfg.Telegram.BotToken = v
	}
	if v := os.Getenv("TELEGRAM_CHAT_ID"); v != "" {
		cfg.Telegram.ChatID = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("MACRO_REFRESH_CRON"); v != "" {
		cfg.Macro.RefreshCron = v
	}
	if v := os.Getenv("CAPITAL"); v != "" {
		if capital, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Sizing.Capital = capital
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8712"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Macro.SetVersion == "" {
		cfg.Macro.SetVersion = "v16"
	}
	if cfg.Strategy.VetoCutoff == 0 {
		cfg.Strategy.VetoCutoff = 40
	}
	if cfg.Strategy.MinBars == 0 {
		cfg.Strategy.MinBars = 60
	}
	if cfg.Strategy.FetchDays == 0 {
		cfg.Strategy.FetchDays = 365
	}
	if cfg.Sizing.Capital == 0 {
		cfg.Sizing.Capital = 1_000_000
	}
	if cfg.Sizing.RiskPct == 0 {
		cfg.Sizing.RiskPct = 2
	}
	if cfg.Sizing.RoundLotSize == 0 {
		cfg.Sizing.RoundLotSize = 1000
	}
	if cfg.Sizing.OddLotThreshold == 0 {
		cfg.Sizing.OddLotThreshold = 600
	}

	return cfg, nil
}

// Validate checks the loaded configuration against its field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation: %w", err)
	}
	return nil
}
