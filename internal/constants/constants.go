package constants

import "time"

const (
	// User validation constants
	MinUsernameLength = 3
	MaxUsernameLength = 32

	// Traffic constants
	BytesInGB = 1024 * 1024 * 1024

	// Network constants
	DefaultTimeout      = 30 * time.Second
	DefaultRetryCount   = 3
	PreflightTimeout    = 10 * time.Second
	PreflightRetryWait  = 2 * time.Second
	TimeoutBackoffCap   = 10 * time.Second
	MaxConnections      = 5
	MaxIdleConnections  = 2
	IdleConnectionLife  = 10 * time.Second

	// Resolver constants
	OnlineWindow = 5 * time.Minute

	// State cache constants
	StateExpiration      = 30 * time.Minute
	StateCleanupInterval = 10 * time.Minute

	// Formatting constants
	TimestampFormat = "2006-01-02 15:04:05"
	DateFormat      = "2006-01-02"
)
