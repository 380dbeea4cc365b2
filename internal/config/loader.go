package config

import (
	"encoding/json"
	"errors"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"

	"remna-tg-admin/internal/constants"
)

const defaultBaseURL = "http://remnawave:3000/api"

// Load loads the configuration from environment variables
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("API_BASE_URL", defaultBaseURL)
	v.SetDefault("API_TIMEOUT", "30")
	v.SetDefault("API_VERIFY_SSL", "true")
	v.SetDefault("API_PREFLIGHT", "false")
	v.SetDefault("API_RETRY_COUNT", strconv.Itoa(constants.DefaultRetryCount))

	v.BindEnv("TELEGRAM_BOT_TOKEN")
	v.BindEnv("ADMIN_USER_IDS")
	v.BindEnv("OPERATOR_USER_IDS")
	v.BindEnv("API_BASE_URL")
	v.BindEnv("REMNAWAVE_API_TOKEN")
	v.BindEnv("REMNAWAVE_COOKIES")
	v.BindEnv("COOKIES")
	v.BindEnv("API_TIMEOUT")
	v.BindEnv("API_VERIFY_SSL")
	v.BindEnv("API_PREFLIGHT")
	v.BindEnv("API_RETRY_COUNT")
	v.BindEnv("HEALTH_ADDR")

	timeout := time.Duration(v.GetFloat64("API_TIMEOUT") * float64(time.Second))
	if timeout <= 0 {
		timeout = constants.DefaultTimeout
	}

	retryCount := v.GetInt("API_RETRY_COUNT")
	if retryCount <= 0 {
		retryCount = constants.DefaultRetryCount
	}

	rawCookies := v.GetString("REMNAWAVE_COOKIES")
	if rawCookies == "" {
		rawCookies = v.GetString("COOKIES")
	}

	cfg := &Config{
		Telegram: TelegramConfig{
			Token:       strings.TrimSpace(v.GetString("TELEGRAM_BOT_TOKEN")),
			AdminIDs:    parseIDList(v.GetString("ADMIN_USER_IDS")),
			OperatorIDs: parseIDList(v.GetString("OPERATOR_USER_IDS")),
		},
		API: APIConfig{
			BaseURL:    NormalizeBaseURL(v.GetString("API_BASE_URL")),
			Token:      strings.TrimSpace(v.GetString("REMNAWAVE_API_TOKEN")),
			Cookies:    ParseCookies(rawCookies),
			Timeout:    timeout,
			VerifySSL:  v.GetBool("API_VERIFY_SSL"),
			Preflight:  v.GetBool("API_PREFLIGHT"),
			RetryCount: retryCount,
		},
		HealthAddr: strings.TrimSpace(v.GetString("HEALTH_ADDR")),
		LogLevel:   v.GetString("LOG_LEVEL"),
	}

	if err := validateConfig(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// validateConfig validates the configuration
func validateConfig(cfg *Config) error {
	if cfg.Telegram.Token == "" {
		return errors.New("TELEGRAM_BOT_TOKEN is required")
	}

	if len(cfg.Telegram.AdminIDs) == 0 {
		return errors.New("ADMIN_USER_IDS is required")
	}

	if !cfg.API.HasAuth() {
		return errors.New("configure REMNAWAVE_API_TOKEN or REMNAWAVE_COOKIES to allow panel API access")
	}

	return nil
}

// parseIDList parses a comma-separated list of Telegram user IDs
func parseIDList(raw string) []int64 {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, part := range parts {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}

// NormalizeBaseURL normalizes the panel base URL and guarantees an /api path segment.
func NormalizeBaseURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultBaseURL
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if path == "" {
		path = "/api"
	} else {
		hasAPI := false
		for _, part := range strings.Split(path, "/") {
			if part == "api" {
				hasAPI = true
				break
			}
		}
		if !hasAPI {
			path += "/api"
		}
	}

	parsed.Path = path
	return parsed.String()
}

// ParseCookies loads cookie configuration supplied via environment variables.
// Accepts a JSON object of name→value, a JSON list of {name,value} objects,
// or a raw Cookie-header-style string; malformed JSON falls back to the
// header format.
func ParseCookies(raw string) map[string]string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	var object map[string]any
	if err := json.Unmarshal([]byte(raw), &object); err == nil {
		cookies := make(map[string]string, len(object))
		for name, value := range object {
			if name == "" || value == nil {
				continue
			}
			cookies[name] = stringifyCookieValue(value)
		}
		if len(cookies) > 0 {
			return cookies
		}
		return nil
	}

	var list []map[string]any
	if err := json.Unmarshal([]byte(raw), &list); err == nil {
		cookies := make(map[string]string, len(list))
		for _, item := range list {
			name, _ := item["name"].(string)
			value, ok := item["value"]
			if name == "" || !ok || value == nil {
				continue
			}
			cookies[name] = stringifyCookieValue(value)
		}
		if len(cookies) > 0 {
			return cookies
		}
		return nil
	}

	return parseCookieHeader(raw)
}

// parseCookieHeader parses a raw Cookie header string into a mapping.
func parseCookieHeader(raw string) map[string]string {
	cookies := make(map[string]string)
	for _, part := range strings.Split(raw, ";") {
		name, value, found := strings.Cut(strings.TrimSpace(part), "=")
		if !found || name == "" || value == "" {
			continue
		}
		cookies[name] = value
	}
	if len(cookies) == 0 {
		return nil
	}
	return cookies
}

func stringifyCookieValue(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	default:
		encoded, _ := json.Marshal(v)
		return string(encoded)
	}
}
