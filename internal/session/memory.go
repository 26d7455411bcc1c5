package session

import (
	"context"
	"sync"
	"time"
)

// GuestUserID is the sentinel key used when a message arrives without a user.
const GuestUserID = "guest"

// MaxTurns caps the per-user conversation window. Oldest turns are dropped
// first once the cap is exceeded.
const MaxTurns = 20

type Message struct {
	Role    string
	Content string
}

type sessionState struct {
	token        string
	conversation []Message
	lastSeen     time.Time
}

// Store holds per-user assistant state: last-seen bearer token and a bounded
// conversation history. Sessions are created lazily and evicted after an
// idle period.
type Store struct {
	mu       sync.RWMutex
	sessions map[string]*sessionState
	locks    map[string]*sync.Mutex
	idleTTL  time.Duration
}

func NewStore(idleTTL time.Duration) *Store {
	return &Store{
		sessions: make(map[string]*sessionState),
		locks:    make(map[string]*sync.Mutex),
		idleTTL:  idleTTL,
	}
}

func (s *Store) getOrCreateLocked(userID string) *sessionState {
	st, ok := s.sessions[userID]
	if !ok {
		st = &sessionState{}
		s.sessions[userID] = st
	}
	st.lastSeen = time.Now()
	return st
}

func (s *Store) SaveToken(userID, token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.getOrCreateLocked(userID).token = token
}

func (s *Store) Token(userID string) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if st, ok := s.sessions[userID]; ok {
		return st.token
	}
	return ""
}

// AppendTurn pushes one conversation entry and trims the window to the most
// recent MaxTurns.
func (s *Store) AppendTurn(userID, role, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.getOrCreateLocked(userID)
	st.conversation = append(st.conversation, Message{Role: role, Content: content})
	if len(st.conversation) > MaxTurns {
		st.conversation = st.conversation[len(st.conversation)-MaxTurns:]
	}
}

// History returns a copy of the user's conversation window.
func (s *Store) History(userID string) []Message {
	s.mu.RLock()
	defer s.mu.RUnlock()
	st, ok := s.sessions[userID]
	if !ok {
		return nil
	}
	out := make([]Message, len(st.conversation))
	copy(out, st.conversation)
	return out
}

// LockUser serializes complete turns for one user key so concurrent messages
// from the same user keep FIFO history ordering. Returns the unlock func.
func (s *Store) LockUser(userID string) func() {
	s.mu.Lock()
	l, ok := s.locks[userID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[userID] = l
	}
	s.mu.Unlock()
	l.Lock()
	return l.Unlock
}

// EvictIdle drops sessions untouched for longer than the idle TTL and
// returns how many were removed. A user whose turn lock is held has a turn
// in flight and is skipped until the next sweep. Tokens persisted in the
// database survive.
func (s *Store) EvictIdle(now time.Time) int {
	if s.idleTTL <= 0 {
		return 0
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for userID, st := range s.sessions {
		if now.Sub(st.lastSeen) <= s.idleTTL {
			continue
		}
		if l, ok := s.locks[userID]; ok {
			if !l.TryLock() {
				continue
			}
			l.Unlock()
		}
		delete(s.sessions, userID)
		delete(s.locks, userID)
		evicted++
	}
	return evicted
}

// StartJanitor runs idle eviction on a ticker until ctx is cancelled.
func (s *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				s.EvictIdle(now)
			}
		}
	}()
}
