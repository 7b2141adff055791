package config

import (
	"errors"

	"github.com/spf13/cast"
)

type Config struct {
	LogLevel      string      `yaml:"LogLevel"`
	CheckInterval int         `yaml:"CheckInterval"`
	MaxRetries    int         `yaml:"MaxRetries"`
	RetryDelay    int         `yaml:"RetryDelay"`
	Cloudflare    *Cloudflare `yaml:"Cloudflare"`
	Notify        *Notify     `yaml:"Notify"`
	DoH           *DoH        `yaml:"DoH"`
}

type Cloudflare struct {
	APIToken   string `yaml:"APIToken"`
	ZoneID     string `yaml:"ZoneID"`
	RecordName string `yaml:"RecordName"`
}

type Notify struct {
	TelegramToken   string `yaml:"TelegramToken"`
	TelegramChatIDs []any  `yaml:"TelegramChatIDs"`
}

type DoH struct {
	Nameserver string `yaml:"Nameserver"`
}

// SetDefaults fills the optional knobs that were left empty.
func (c *Config) SetDefaults() {
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CheckInterval <= 0 {
		c.CheckInterval = 30
	}
	if c.MaxRetries <= 0 {
		c.MaxRetries = 5
	}
	if c.RetryDelay <= 0 {
		c.RetryDelay = 5
	}
}

// Validate checks the fields the agent cannot run without. Missing identity
// fields are a startup failure, never a runtime one.
func (c *Config) Validate() error {
	if c.Cloudflare == nil {
		return errors.New("missing Cloudflare section in config")
	}
	if c.Cloudflare.APIToken == "" {
		return errors.New("missing required config key: Cloudflare.APIToken")
	}
	if c.Cloudflare.ZoneID == "" {
		return errors.New("missing required config key: Cloudflare.ZoneID")
	}
	if c.Cloudflare.RecordName == "" {
		return errors.New("missing required config key: Cloudflare.RecordName")
	}
	return nil
}

// ChatIDs normalizes the configured Telegram chat list to int64 identifiers.
// The yaml side may carry them as numbers or strings.
func (c *Config) ChatIDs() ([]int64, error) {
	if c.Notify == nil {
		return nil, nil
	}

	ids := make([]int64, 0, len(c.Notify.TelegramChatIDs))
	for i := range c.Notify.TelegramChatIDs {
		id, err := cast.ToInt64E(c.Notify.TelegramChatIDs[i])
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
