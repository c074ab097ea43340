package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"DormPower/internal/store"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// DefaultPath is read when CONFIG_PATH is unset.
const DefaultPath = "configs/config.yaml"

// Config holds all application configuration.
type Config struct {
	Account struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"account"`
	Rooms struct {
		Lighting        string `yaml:"lighting"`
		AirConditioning string `yaml:"air_conditioning"`
	} `yaml:"rooms"`
	ECard struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"ecard"`
	Telegram struct {
		BotToken string `yaml:"bot_token"`
		ChatID   string `yaml:"chat_id"`
		APIBase  string `yaml:"api_base"`
	} `yaml:"telegram"`
	ServerChan struct {
		Keys    []string `yaml:"keys"`
		APIBase string   `yaml:"api_base"`
	} `yaml:"serverchan"`
	Storage struct {
		DataDir   string `yaml:"data_dir"`
		IndexFile string `yaml:"index_file"`
	} `yaml:"storage"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	Metrics struct {
		TextfilePath string `yaml:"textfile_path"`
	} `yaml:"metrics"`
	Schedule struct {
		Cron       string `yaml:"cron"`
		RunOnStart bool   `yaml:"run_on_start"`
	} `yaml:"schedule"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Proxy string `yaml:"proxy"`
}

// Load reads config from a YAML file, then applies .env and environment
// variable overrides. A missing file is not an error.
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

	// .env is for local runs; real environment variables take precedence.
	_ = godotenv.Load()

	overrides := []struct {
		env string
		dst *string
	}{
		{"ACCOUNT", &cfg.Account.Username},
		{"PASSWORD", &cfg.Account.Password},
		{"lt_room", &cfg.Rooms.Lighting},
		{"ac_room", &cfg.Rooms.AirConditioning},
		{"ECARD_BASE_URL", &cfg.ECard.BaseURL},
		{"TELEGRAM_BOT_TOKEN", &cfg.Telegram.BotToken},
		{"TELEGRAM_CHAT_ID", &cfg.Telegram.ChatID},
		{"TELEGRAM_API_BASE", &cfg.Telegram.APIBase},
		{"SERVERCHAN_API_BASE", &cfg.ServerChan.APIBase},
		{"DATA_DIR", &cfg.Storage.DataDir},
		{"INDEX_FILE", &cfg.Storage.IndexFile},
		{"SQLITE_PATH", &cfg.Database.SQLitePath},
		{"METRICS_TEXTFILE", &cfg.Metrics.TextfilePath},
		{"CRON_SCHEDULE", &cfg.Schedule.Cron},
		{"LOG_LEVEL", &cfg.Log.Level},
		{"HTTPS_PROXY", &cfg.Proxy},
	}
	for _, o := range overrides {
		if v := os.Getenv(o.env); v != "" {
			*o.dst = v
		}
	}
	if v := os.Getenv("SERVERCHAN_KEYS"); v != "" {
		cfg.ServerChan.Keys = SplitKeys(v)
	}
	if v := os.Getenv("RUN_ON_START"); v != "" {
		cfg.Schedule.RunOnStart = v == "true"
	}

	// Defaults
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = "page/data"
	}
	if cfg.Storage.IndexFile == "" {
		cfg.Storage.IndexFile = store.DefaultIndexPath(cfg.Storage.DataDir)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}

	return cfg, nil
}

// SplitKeys splits a comma-separated key list, dropping blanks.
func SplitKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	var errs []error
	if c.Account.Username == "" || c.Account.Password == "" {
		errs = append(errs, errors.New("account.username and account.password are required"))
	}
	if c.Rooms.Lighting == "" || c.Rooms.AirConditioning == "" {
		errs = append(errs, errors.New("rooms.lighting and rooms.air_conditioning are required"))
	}
	if c.ECard.BaseURL == "" {
		errs = append(errs, errors.New("ecard.base_url is required"))
	}
	if c.Telegram.BotToken == "" {
		errs = append(errs, errors.New("telegram.bot_token is required"))
	}
	if c.Telegram.ChatID == "" {
		errs = append(errs, errors.New("telegram.chat_id is required"))
	}
	if c.Storage.DataDir == "" {
		errs = append(errs, errors.New("storage.data_dir is required"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	if c.Schedule.Cron != "" {
		if _, err := CronParser.Parse(c.Schedule.Cron); err != nil {
			errs = append(errs, fmt.Errorf("schedule.cron %q: %w", c.Schedule.Cron, err))
		}
	}
	return errors.Join(errs...)
}

// CronParser accepts 6-field specs with seconds, plus descriptors like @hourly.
var CronParser = cron.NewParser(
	cron.Second | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)
