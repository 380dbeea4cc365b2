package config

import "time"

// Config represents the application configuration
type Config struct {
	Telegram   TelegramConfig
	API        APIConfig
	HealthAddr string
	LogLevel   string
}

// TelegramConfig holds the Telegram bot configuration
type TelegramConfig struct {
	Token       string
	AdminIDs    []int64
	OperatorIDs []int64
}

// APIConfig holds the connection parameters for the Remnawave panel API
type APIConfig struct {
	BaseURL    string
	Token      string
	Cookies    map[string]string
	Timeout    time.Duration
	VerifySSL  bool
	Preflight  bool
	RetryCount int
}

// HasAuth reports whether at least one authentication mechanism is configured.
func (c *APIConfig) HasAuth() bool {
	return c.Token != "" || len(c.Cookies) > 0
}
