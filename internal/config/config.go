package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

// Default configuration values
const (
	DefaultPort           = 8080
	DefaultIdleTimeout    = 5 * time.Minute
	DefaultMaxMessageSize = 64 * 1024

	DefaultServerURL = "ws://localhost:8080/ws"
	DefaultSTUN      = "stun:stun.l.google.com:19302"
)

// Server holds the signaling server configuration.
type Server struct {
	Port           int
	IdleTimeout    time.Duration
	MaxMessageSize int64
}

// ServerOptions carries CLI flag overrides. Zero values mean "not set".
type ServerOptions struct {
	Port           int
	IdleTimeout    time.Duration
	MaxMessageSize int64
}

// LoadServer reads configuration with the following priority:
// 1. CLI flags (passed via ServerOptions) - highest priority
// 2. Environment variables
// 3. Hardcoded defaults - lowest priority
func LoadServer(opts ServerOptions) (*Server, error) {
	cfg := &Server{
		Port:           DefaultPort,
		IdleTimeout:    DefaultIdleTimeout,
		MaxMessageSize: DefaultMaxMessageSize,
	}

	if v, ok := os.LookupEnv("PORT"); ok && v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.Port = port
	}
	if opts.Port != 0 {
		cfg.Port = opts.Port
	}
	if cfg.Port < 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if v, ok := os.LookupEnv("ROOM_IDLE_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ROOM_IDLE_TIMEOUT %q: %w", v, err)
		}
		cfg.IdleTimeout = d
	}
	if opts.IdleTimeout != 0 {
		cfg.IdleTimeout = opts.IdleTimeout
	}
	if cfg.IdleTimeout <= 0 {
		return nil, fmt.Errorf("idle timeout must be positive, got %s", cfg.IdleTimeout)
	}

	if v, ok := os.LookupEnv("MAX_MESSAGE_SIZE"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid MAX_MESSAGE_SIZE %q: %w", v, err)
		}
		cfg.MaxMessageSize = n
	}
	if opts.MaxMessageSize != 0 {
		cfg.MaxMessageSize = opts.MaxMessageSize
	}
	if cfg.MaxMessageSize <= 0 {
		return nil, fmt.Errorf("max message size must be positive, got %d", cfg.MaxMessageSize)
	}

	return cfg, nil
}

// Addr is the listen address for the configured port.
func (c *Server) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Client holds configuration for the peer commands.
type Client struct {
	// ServerURL is the websocket URL of the signaling server
	ServerURL string

	// ICE servers for WebRTC
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// ClientOptions carries CLI flag overrides.
type ClientOptions struct {
	ServerURL  string
	STUNServer string
	TURNServer string
	TURNUser   string
	TURNPass   string
}

// LoadClient resolves each field as flag > env > default.
func LoadClient(opts ClientOptions) (*Client, error) {
	cfg := &Client{
		ServerURL:  pick(opts.ServerURL, "WARPLINE_SERVER", DefaultServerURL),
		STUNServer: pick(opts.STUNServer, "STUN_SERVER", DefaultSTUN),
		TURNServer: pick(opts.TURNServer, "TURN_SERVER", ""),
		TURNUser:   pick(opts.TURNUser, "TURN_USERNAME", ""),
		TURNPass:   pick(opts.TURNPass, "TURN_PASSWORD", ""),
	}

	u, err := url.Parse(cfg.ServerURL)
	if err != nil {
		return nil, fmt.Errorf("invalid server URL: %w", err)
	}
	if u.Scheme != "ws" && u.Scheme != "wss" {
		return nil, fmt.Errorf("server URL must use ws or wss, got %q", u.Scheme)
	}
	return cfg, nil
}

func pick(flag, env, def string) string {
	if flag != "" {
		return flag
	}
	if v := os.Getenv(env); v != "" {
		return v
	}
	return def
}

// HealthURL derives the health endpoint from the websocket URL.
func (c *Client) HealthURL() string {
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return ""
	}
	switch u.Scheme {
	case "wss":
		u.Scheme = "https"
	default:
		u.Scheme = "http"
	}
	u.Path = strings.TrimSuffix(u.Path, "/ws") + "/health"
	u.RawQuery = ""
	return u.String()
}

// GetSTUNServers returns STUN server URLs as strings
func (c *Client) GetSTUNServers() []string {
	if c.STUNServer == "" {
		return nil
	}
	return []string{c.STUNServer}
}

// GetTURNServers returns TURN server URLs if configured
func (c *Client) GetTURNServers() []string {
	if c.TURNServer == "" {
		return nil
	}
	return []string{
		fmt.Sprintf("%s:3478?transport=udp", c.TURNServer),
		fmt.Sprintf("%s:3478?transport=tcp", c.TURNServer),
	}
}

// GetTURNCredentials returns TURN username and password
func (c *Client) GetTURNCredentials() (string, string) {
	return c.TURNUser, c.TURNPass
}
