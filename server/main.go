package main

import (
	"encoding/json"
	"log"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"blocksnake/internal/game"
)

// ipRateLimiter tracks last connection time per IP to prevent abuse
type ipRateLimiter struct {
	mu       sync.Mutex
	times    map[string]time.Time
	cooldown time.Duration
}

func newIPRateLimiter(cooldown time.Duration) *ipRateLimiter {
	rl := &ipRateLimiter{times: make(map[string]time.Time), cooldown: cooldown}
	// Cleanup stale entries periodically
	go func() {
		for range time.Tick(LimiterSweepTime) {
			rl.sweep(time.Now())
		}
	}()
	return rl
}

// allow returns true if this IP can connect, and records the attempt
func (rl *ipRateLimiter) allow(ip string, now time.Time) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	if last, ok := rl.times[ip]; ok {
		if now.Sub(last) < rl.cooldown {
			return false
		}
	}
	rl.times[ip] = now
	return true
}

// sweep drops entries older than the cooldown
func (rl *ipRateLimiter) sweep(now time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	cutoff := now.Add(-rl.cooldown)
	for ip, t := range rl.times {
		if t.Before(cutoff) {
			delete(rl.times, ip)
		}
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins for development; tighten in production
		return true
	},
	ReadBufferSize:  512,
	WriteBufferSize: 4096,
	// Enable per-message deflate compression (RFC 7692)
	EnableCompression: true,
}

// sendErrorAndClose sends an error message via WebSocket then closes the connection
func sendErrorAndClose(ws *websocket.Conn, msg string) {
	data, _ := json.Marshal(ErrorMsg{Type: MsgError, Message: msg})
	_ = ws.WriteMessage(websocket.TextMessage, data)
	ws.Close()
}

// Server hosts one game per WebSocket connection
type Server struct {
	conns       *ConnManager
	board       *Scoreboard
	limiter     *ipRateLimiter
	engineOpts  game.Options
	staticDir   string
	maxSessions int
}

// NewServer creates a server for cfg
func NewServer(cfg Config) *Server {
	opts := game.DefaultOptions()
	opts.Width, opts.Height, opts.BlockSize = BoardWidth, BoardHeight, BlockSize
	opts.StrictSpawn = cfg.StrictSpawn
	return &Server{
		conns:       NewConnManager(),
		board:       NewScoreboard(LeaderboardSize),
		limiter:     newIPRateLimiter(time.Duration(IPCooldownSec) * time.Second),
		engineOpts:  opts,
		staticDir:   cfg.StaticDir,
		maxSessions: MaxPlayers,
	}
}

// Handler returns the HTTP routes: the WebSocket endpoint and the static client
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(WebSocketPath, s.serveWS)
	mux.Handle("/", http.FileServer(http.Dir(s.staticDir)))
	return mux
}

func (s *Server) serveWS(w http.ResponseWriter, r *http.Request) {
	// Extract client IP (handle X-Forwarded-For for reverse proxies)
	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip, _, _ = net.SplitHostPort(r.RemoteAddr)
	}

	ws, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	// Check limits after upgrade so client can receive error messages
	if s.conns.Count() >= s.maxSessions {
		sendErrorAndClose(ws, "Server full. Please try again later.")
		return
	}
	if !s.limiter.allow(ip, time.Now()) {
		sendErrorAndClose(ws, "Too many connections. Please wait a moment.")
		return
	}

	// Enable per-message write compression at best-speed level
	ws.EnableWriteCompression(true)

	conn := NewConn(ws)
	loop, err := NewGameLoop(conn, s.engineOpts, s.board)
	if err != nil {
		log.Printf("session setup failed: %v", err)
		sendErrorAndClose(ws, "Game unavailable.")
		return
	}
	s.conns.Add(conn)
	log.Printf("player connected: %s", conn.ID)

	// Send welcome immediately so client can size its canvas
	_ = conn.Send(WelcomeMsg{
		Type:    MsgWelcome,
		ID:      conn.ID,
		Width:   BoardWidth,
		Height:  BoardHeight,
		Block:   BlockSize,
		Palette: palette(),
	})

	onMessage := func(c *Conn, msg ClientMessage) {
		loop.Handle(msg)
	}

	onDisconnect := func(c *Conn) {
		loop.Stop()
		s.conns.Remove(c.ID)
		s.board.Remove(c.ID)
		log.Printf("player disconnected: %s", c.ID)
	}

	// Blocking read loop, runs until client disconnects
	conn.ReadLoop(onMessage, onDisconnect)
}

func main() {
	cfg := LoadConfig()
	srv := NewServer(cfg)

	log.Printf("server listening on %s (board %dx%d, block %d)", cfg.Addr, BoardWidth, BoardHeight, BlockSize)
	if err := http.ListenAndServe(cfg.Addr, srv.Handler()); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
