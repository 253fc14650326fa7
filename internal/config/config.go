package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/gnomegl/tgpin/pkg/upload"
)

const (
	DefaultSessionFile = "tgpin.session"
	DefaultLogLevel    = "info"
)

type Config struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
	Export   ExportConfig   `mapstructure:"export"`
	Upload   UploadConfig   `mapstructure:"upload"`
	Log      LogConfig      `mapstructure:"log"`
}

type TelegramConfig struct {
	APIID       int    `mapstructure:"api_id"`
	APIHash     string `mapstructure:"api_hash"`
	SessionFile string `mapstructure:"session_file"`
}

type ExportConfig struct {
	// Chats is the ordered list of public chat handles to collect from.
	// An empty list is valid and produces an empty batch.
	Chats []string `mapstructure:"chats"`

	// Output is an optional local copy of the delivered JSON artifact.
	Output string `mapstructure:"output"`
}

type UploadConfig struct {
	Provider string `mapstructure:"provider"`
	Token    string `mapstructure:"token"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// Load unmarshals and validates the configuration read by viper.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Telegram.SessionFile == "" {
		cfg.Telegram.SessionFile = DefaultSessionFile
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Telegram.APIID <= 0 {
		return fmt.Errorf("telegram.api_id must be set")
	}
	if c.Telegram.APIHash == "" {
		return fmt.Errorf("telegram.api_hash must be set")
	}
	if c.Upload.Provider != upload.ProviderGofile {
		return fmt.Errorf("upload.provider %q: %w", c.Upload.Provider, upload.ErrUnsupportedProvider)
	}
	if c.Upload.Token == "" {
		return fmt.Errorf("upload.token must be set")
	}
	return nil
}
