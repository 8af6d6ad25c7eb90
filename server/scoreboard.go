package main

import (
	"sort"
	"sync"
)

// LeaderboardEntry is one player's best finished run
type LeaderboardEntry struct {
	ID     string `json:"i"`
	Score  int    `json:"p"`
	Length int    `json:"l"`
}

// Scoreboard keeps the best run of every connected player
type Scoreboard struct {
	mu   sync.RWMutex
	best map[string]LeaderboardEntry
	size int
}

// NewScoreboard creates a board that reports at most size entries
func NewScoreboard(size int) *Scoreboard {
	return &Scoreboard{best: make(map[string]LeaderboardEntry), size: size}
}

// Record stores a finished run if it beats the player's previous best
func (b *Scoreboard) Record(id string, score, length int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if prev, ok := b.best[id]; ok && !better(LeaderboardEntry{ID: id, Score: score, Length: length}, prev) {
		return
	}
	b.best[id] = LeaderboardEntry{ID: id, Score: score, Length: length}
}

// Remove forgets a player that left
func (b *Scoreboard) Remove(id string) {
	b.mu.Lock()
	delete(b.best, id)
	b.mu.Unlock()
}

// Leaderboard returns the top entries sorted by score, then length
func (b *Scoreboard) Leaderboard() []LeaderboardEntry {
	b.mu.RLock()
	entries := make([]LeaderboardEntry, 0, len(b.best))
	for _, e := range b.best {
		entries = append(entries, e)
	}
	b.mu.RUnlock()

	sort.Slice(entries, func(i, j int) bool {
		return better(entries[i], entries[j])
	})
	if len(entries) > b.size {
		entries = entries[:b.size]
	}
	return entries
}

// better orders entries; ID breaks ties so the order is stable
func better(a, c LeaderboardEntry) bool {
	if a.Score != c.Score {
		return a.Score > c.Score
	}
	if a.Length != c.Length {
		return a.Length > c.Length
	}
	return a.ID < c.ID
}
