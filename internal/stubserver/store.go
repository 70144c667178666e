// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package stubserver

import (
	"sync"
	"time"

	"github.com/jeranaias/careerdesk-tui/internal/api"
)

// TimestampLayout matches the service's naive ISO-8601 timestamps.
const TimestampLayout = "2006-01-02T15:04:05.000000"

// Store is the in-memory conversation and log store. It is safe for
// concurrent use.
type Store struct {
	mu            sync.RWMutex
	conversations map[string][]api.Exchange
	logs          []api.LogEntry
	now           func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		conversations: make(map[string][]api.Exchange),
		now:           time.Now,
	}
}

// Timestamp returns the current time in TimestampLayout.
func (s *Store) Timestamp() string {
	return s.now().Format(TimestampLayout)
}

// AddExchange appends one exchange to sender's history.
func (s *Store) AddExchange(email string, ex api.Exchange) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if ex.Timestamp == "" {
		ex.Timestamp = s.Timestamp()
	}
	s.conversations[email] = append(s.conversations[email], ex)
}

// History returns a copy of sender's exchanges, oldest first.
func (s *Store) History(email string) []api.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	h := s.conversations[email]
	out := make([]api.Exchange, len(h))
	copy(out, h)
	return out
}

// Conversations returns a copy of every history, keyed by sender email.
func (s *Store) Conversations() map[string][]api.Exchange {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string][]api.Exchange, len(s.conversations))
	for k, v := range s.conversations {
		h := make([]api.Exchange, len(v))
		copy(h, v)
		out[k] = h
	}
	return out
}

// ClearConversations drops every history.
func (s *Store) ClearConversations() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.conversations = make(map[string][]api.Exchange)
}

// AddLog records a processed submission.
func (s *Store) AddLog(entry api.LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if entry.Timestamp == "" {
		entry.Timestamp = s.Timestamp()
	}
	s.logs = append(s.logs, entry)
}

// Logs returns every log entry, newest first.
func (s *Store) Logs() []api.LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]api.LogEntry, len(s.logs))
	for i, e := range s.logs {
		out[len(s.logs)-1-i] = e
	}
	return out
}

// ClearLogs drops every log entry.
func (s *Store) ClearLogs() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.logs = nil
}
