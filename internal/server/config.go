package server

import (
	"time"
)

// Config holds info required to configure a server.
type Config struct {
	// MaxHeaderBytes can be used to override the default of 1<<20.
	MaxHeaderBytes int `json:"max_header_bytes"`

	// ReadTimeout can be used to override the default http server timeout of 20s.
	ReadTimeout time.Duration `json:"read_timeout"`

	// WriteTimeout can be used to override the default http server timeout of 20s.
	WriteTimeout time.Duration `json:"write_timeout"`

	// IdleTimeout can be used to override the default http server timeout of 120s.
	IdleTimeout time.Duration `json:"idle_timeout"`

	// ShutdownTimeout can be used to override the default shutdown timeout of 5m.
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// HTTPPort is the port the server will serve HTTP over. The default is 8080.
	HTTPPort int `json:"http_port"`

	// LoggerLevel (eg.: panic, fatal, error, warn, info, debug)
	LoggerLevel string `json:"logger_level"`

	// LoggerFormat (eg.: text, json)
	LoggerFormat string `json:"logger_format"`
}

// DefaultConfig returns a generic server configuration.
func DefaultConfig() Config {
	return Config{
		MaxHeaderBytes:  1 << 20,
		ReadTimeout:     20 * time.Second,
		WriteTimeout:    20 * time.Second,
		IdleTimeout:     120 * time.Second,
		ShutdownTimeout: 5 * time.Minute,
		HTTPPort:        8080,
		LoggerLevel:     "info",
		LoggerFormat:    "json",
	}
}
