package config

import (
	"testing"
	"time"
)

// clearEnv blanks every variable the loaders read.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"PORT", "ROOM_IDLE_TIMEOUT", "MAX_MESSAGE_SIZE",
		"WARPLINE_SERVER", "STUN_SERVER", "TURN_SERVER", "TURN_USERNAME", "TURN_PASSWORD",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadServerDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadServer(ServerOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != DefaultPort || cfg.IdleTimeout != DefaultIdleTimeout || cfg.MaxMessageSize != DefaultMaxMessageSize {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Addr() != ":8080" {
		t.Errorf("unexpected addr %s", cfg.Addr())
	}
}

func TestLoadServerPrecedence(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("ROOM_IDLE_TIMEOUT", "90s")
	t.Setenv("MAX_MESSAGE_SIZE", "1024")

	cfg, err := LoadServer(ServerOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9000 || cfg.IdleTimeout != 90*time.Second || cfg.MaxMessageSize != 1024 {
		t.Errorf("env not applied: %+v", cfg)
	}

	cfg, err = LoadServer(ServerOptions{Port: 7000, IdleTimeout: time.Minute, MaxMessageSize: 2048})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 7000 || cfg.IdleTimeout != time.Minute || cfg.MaxMessageSize != 2048 {
		t.Errorf("flags should win over env: %+v", cfg)
	}
}

func TestLoadServerRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		opts ServerOptions
	}{
		{"port not a number", map[string]string{"PORT": "eighty"}, ServerOptions{}},
		{"port out of range", nil, ServerOptions{Port: 70000}},
		{"bad duration", map[string]string{"ROOM_IDLE_TIMEOUT": "soon"}, ServerOptions{}},
		{"negative duration", nil, ServerOptions{IdleTimeout: -time.Second}},
		{"bad size", map[string]string{"MAX_MESSAGE_SIZE": "big"}, ServerOptions{}},
		{"negative size", nil, ServerOptions{MaxMessageSize: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := LoadServer(tc.opts); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadClientPrecedence(t *testing.T) {
	clearEnv(t)
	cfg, err := LoadClient(ClientOptions{})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != DefaultServerURL || cfg.STUNServer != DefaultSTUN {
		t.Errorf("unexpected defaults %+v", cfg)
	}

	t.Setenv("WARPLINE_SERVER", "wss://env.example.com/ws")
	t.Setenv("TURN_SERVER", "turn:env.example.com")
	cfg, err = LoadClient(ClientOptions{ServerURL: "ws://flag.example.com/ws"})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ServerURL != "ws://flag.example.com/ws" {
		t.Errorf("flag should win, got %s", cfg.ServerURL)
	}
	if cfg.TURNServer != "turn:env.example.com" {
		t.Errorf("env should apply, got %s", cfg.TURNServer)
	}
}

func TestLoadClientRejectsHTTP(t *testing.T) {
	clearEnv(t)
	if _, err := LoadClient(ClientOptions{ServerURL: "http://example.com/ws"}); err == nil {
		t.Error("expected non-websocket scheme to be rejected")
	}
}

func TestHealthURL(t *testing.T) {
	cases := map[string]string{
		"ws://localhost:8080/ws":        "http://localhost:8080/health",
		"wss://signal.example.com/ws":   "https://signal.example.com/health",
		"ws://localhost:8080":           "http://localhost:8080/health",
		"wss://example.com/chat/ws?x=1": "https://example.com/chat/health",
	}
	for in, want := range cases {
		c := &Client{ServerURL: in}
		if got := c.HealthURL(); got != want {
			t.Errorf("HealthURL(%s) = %s, want %s", in, got, want)
		}
	}
}

func TestICEServers(t *testing.T) {
	c := &Client{STUNServer: "stun:stun.example.com:3478"}
	if got := c.GetSTUNServers(); len(got) != 1 || got[0] != "stun:stun.example.com:3478" {
		t.Errorf("unexpected STUN servers %v", got)
	}
	if c.GetTURNServers() != nil {
		t.Error("no TURN server configured")
	}

	c.TURNServer = "turn:turn.example.com"
	got := c.GetTURNServers()
	if len(got) != 2 || got[0] != "turn:turn.example.com:3478?transport=udp" || got[1] != "turn:turn.example.com:3478?transport=tcp" {
		t.Errorf("unexpected TURN servers %v", got)
	}
}
