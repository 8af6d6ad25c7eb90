package main

import (
	"os"
	"time"
)

// Server configuration constants
const (
	// Server
	ServerPort    = ":8080"
	StaticDir     = "../client"
	WebSocketPath = "/ws"

	// Limits
	MaxPlayers       = 200 // concurrent sessions, one engine each
	IPCooldownSec    = 2   // min seconds between connects from one IP
	MaxMessageBytes  = 512 // client messages are tiny; anything bigger is abuse
	WriteTimeout     = 2 * time.Second
	LimiterSweepTime = 60 * time.Second

	// Scoreboard
	LeaderboardSize = 10

	// Board, mirrored in the welcome message so the client can size its canvas
	BoardWidth  = 600
	BoardHeight = 400
	BlockSize   = 10
)

// Environment overrides
const (
	EnvAddr        = "BLOCKSNAKE_ADDR"
	EnvStaticDir   = "BLOCKSNAKE_STATIC_DIR"
	EnvStrictSpawn = "BLOCKSNAKE_STRICT_SPAWN"
)

// Config is the resolved server configuration
type Config struct {
	Addr        string
	StaticDir   string
	StrictSpawn bool
}

// LoadConfig applies environment overrides to the defaults
func LoadConfig() Config {
	cfg := Config{
		Addr:      ServerPort,
		StaticDir: StaticDir,
	}
	if env := os.Getenv(EnvAddr); env != "" {
		cfg.Addr = env
	}
	if env := os.Getenv(EnvStaticDir); env != "" {
		cfg.StaticDir = env
	}
	switch os.Getenv(EnvStrictSpawn) {
	case "1", "true", "yes":
		cfg.StrictSpawn = true
	}
	return cfg
}
