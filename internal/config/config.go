package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/wiredebate-server/internal/core"
	"github.com/vovakirdan/wiredebate-server/internal/enhance"
)

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	RoomCapacity int    `mapstructure:"room_capacity" yaml:"room_capacity"`
	HistoryLimit int    `mapstructure:"history_limit" yaml:"history_limit"`
	DebateRoom   string `mapstructure:"debate_room" yaml:"debate_room"`
	ClientBuffer int    `mapstructure:"client_buffer" yaml:"client_buffer"`

	// RateLimitPerMinute caps inbound frames per connection; 0 disables it.
	RateLimitPerMinute int      `mapstructure:"rate_limit_per_minute" yaml:"rate_limit_per_minute"`
	AllowedOrigins     []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`

	Enhance enhance.Config `mapstructure:"enhance" yaml:"enhance"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:               ":8080",
		ReadHeaderTimeout:  5 * time.Second,
		ShutdownTimeout:    5 * time.Second,
		LogLevel:           "info",
		RoomCapacity:       core.DefaultRoomCapacity,
		HistoryLimit:       core.DefaultHistoryLimit,
		DebateRoom:         core.DefaultDebateRoom,
		ClientBuffer:       core.DefaultClientBuffer,
		RateLimitPerMinute: 120,
		AllowedOrigins:     []string{"*"},
		Enhance: enhance.Config{
			Timeout: 15 * time.Second,
		},
	}
}

// UpdateFrom overwrites non-zero values from other config into receiver.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.ReadHeaderTimeout != 0 {
		c.ReadHeaderTimeout = other.ReadHeaderTimeout
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
	if other.RoomCapacity != 0 {
		c.RoomCapacity = other.RoomCapacity
	}
	if other.HistoryLimit != 0 {
		c.HistoryLimit = other.HistoryLimit
	}
	if other.DebateRoom != "" {
		c.DebateRoom = other.DebateRoom
	}
	if other.ClientBuffer != 0 {
		c.ClientBuffer = other.ClientBuffer
	}
	if other.RateLimitPerMinute != 0 {
		c.RateLimitPerMinute = other.RateLimitPerMinute
	}
	if len(other.AllowedOrigins) > 0 {
		c.AllowedOrigins = other.AllowedOrigins
	}
	if other.Enhance.Endpoint != "" {
		c.Enhance.Endpoint = other.Enhance.Endpoint
	}
	if other.Enhance.APIKey != "" {
		c.Enhance.APIKey = other.Enhance.APIKey
	}
	if other.Enhance.Model != "" {
		c.Enhance.Model = other.Enhance.Model
	}
	if other.Enhance.Timeout != 0 {
		c.Enhance.Timeout = other.Enhance.Timeout
	}
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []error
	if c.Addr == "" {
		errs = append(errs, errors.New("addr must not be empty"))
	}
	if c.RoomCapacity < 1 {
		errs = append(errs, fmt.Errorf("room_capacity must be positive, got %d", c.RoomCapacity))
	}
	if c.HistoryLimit < 1 {
		errs = append(errs, fmt.Errorf("history_limit must be positive, got %d", c.HistoryLimit))
	}
	if c.ClientBuffer < 1 {
		errs = append(errs, fmt.Errorf("client_buffer must be positive, got %d", c.ClientBuffer))
	}
	if c.RateLimitPerMinute < 0 {
		errs = append(errs, fmt.Errorf("rate_limit_per_minute must not be negative, got %d", c.RateLimitPerMinute))
	}
	if err := core.ValidateRoomID(c.DebateRoom); err != nil {
		errs = append(errs, fmt.Errorf("debate_room: %w", err))
	}
	if c.ShutdownTimeout < 0 || c.ReadHeaderTimeout < 0 {
		errs = append(errs, errors.New("timeouts must not be negative"))
	}
	return errors.Join(errs...)
}
