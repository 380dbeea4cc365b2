package remnaclient

import (
	"crypto/tls"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"

	"remna-tg-admin/internal/config"
	"remna-tg-admin/internal/constants"
)

// Client is a Remnawave panel API client. All operations fetch fresh
// snapshots; nothing is cached across calls.
type Client struct {
	httpClient  *resty.Client
	cfg         config.APIConfig
	logger      *logrus.Logger
	backoffUnit time.Duration
	now         func() time.Time
}

// New creates a panel API client from the given connection parameters.
func New(cfg config.APIConfig, logger *logrus.Logger) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:     constants.MaxConnections,
		MaxIdleConns:        constants.MaxIdleConnections,
		MaxIdleConnsPerHost: constants.MaxIdleConnections,
		IdleConnTimeout:     constants.IdleConnectionLife,
		ForceAttemptHTTP2:   false,
		TLSClientConfig:     &tls.Config{InsecureSkipVerify: !cfg.VerifySSL},
	}

	httpClient := resty.New().
		SetTransport(transport).
		SetTimeout(cfg.Timeout).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "RemnaBot/1.1").
		SetHeader("Connection", "close")

	if cfg.Token != "" {
		httpClient.SetAuthToken(cfg.Token)
	}
	for name, value := range cfg.Cookies {
		httpClient.SetCookie(&http.Cookie{Name: name, Value: value})
	}

	if len(cfg.Cookies) > 0 {
		logger.Debugf("Configured %d API cookies", len(cfg.Cookies))
	}

	return &Client{
		httpClient:  httpClient,
		cfg:         cfg,
		logger:      logger,
		backoffUnit: time.Second,
		now:         time.Now,
	}
}
