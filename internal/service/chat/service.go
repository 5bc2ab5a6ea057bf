// Package chat keeps one dialog engine alive per caller across independent
// requests and evicts conversations that go idle.
package chat

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/yosoybienestar/chat-bienestar/backend/internal/metrics"
	modelchat "github.com/yosoybienestar/chat-bienestar/backend/internal/model/chat"
	"github.com/yosoybienestar/chat-bienestar/backend/internal/service/dialog"
)

var ErrSessionNotFound = errors.New("session not found")

const (
	DefaultIdleTimeout = 20 * time.Minute

	// transcriptLimit bounds per-session memory; older turns are dropped.
	transcriptLimit = 200

	senderUser = "user"
	senderBot  = "bot"
)

// session pairs one dialog engine with its bookkeeping. Its mutex serializes
// message processing, so two concurrent requests carrying the same id cannot
// interleave engine mutation. lastActive is guarded by the registry mutex.
type session struct {
	mu         sync.Mutex
	id         string
	engine     *dialog.Engine
	transcript []modelchat.Message
	createdAt  time.Time
	lastActive time.Time
}

func (sess *session) record(sender, content string) {
	msg := modelchat.Message{
		ID:        uuid.NewString(),
		SessionID: sess.id,
		Sender:    sender,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
	sess.transcript = append(sess.transcript, msg)
	if len(sess.transcript) > transcriptLimit {
		sess.transcript = sess.transcript[len(sess.transcript)-transcriptLimit:]
	}
}

// Service is the in-memory session registry. Its mutex covers only the map
// and the activity timestamps, never the verification network call a dialog
// makes while processing.
type Service struct {
	mu          sync.Mutex
	sessions    map[string]*session
	verifier    dialog.Verifier
	idleTimeout time.Duration
	now         func() time.Time
}

// NewService bootstraps the registry. A non-positive idleTimeout falls back
// to the default of twenty minutes.
func NewService(verifier dialog.Verifier, idleTimeout time.Duration) *Service {
	if idleTimeout <= 0 {
		idleTimeout = DefaultIdleTimeout
	}
	return &Service{
		sessions:    make(map[string]*session),
		verifier:    verifier,
		idleTimeout: idleTimeout,
		now:         time.Now,
	}
}

// ProcessMessage routes one user turn to the session's engine, creating the
// session first when the id is empty or unknown. For the turn that creates a
// session the reply is the welcome text; the engine is pre-seeded past the
// greeting, so a stale id silently restarts the script instead of erroring.
func (s *Service) ProcessMessage(ctx context.Context, sessionID, text string) (modelchat.Session, string) {
	sess, welcome, created := s.resolve(sessionID)
	if created {
		return s.snapshotOf(sess), welcome
	}

	sess.mu.Lock()
	reply := sess.engine.Process(ctx, text)
	sess.record(senderUser, text)
	sess.record(senderBot, reply)
	sess.mu.Unlock()

	metrics.MessagesProcessed.Inc()

	s.mu.Lock()
	sess.lastActive = s.now()
	s.mu.Unlock()

	return s.snapshotOf(sess), reply
}

// CreateSession allocates a fresh session and returns its snapshot together
// with the welcome text.
func (s *Service) CreateSession(_ context.Context) (modelchat.Session, string) {
	sess, welcome, _ := s.resolve("")
	return s.snapshotOf(sess), welcome
}

// Close removes a session explicitly.
func (s *Service) Close(sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[sessionID]; !ok {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	metrics.LiveSessions.Set(float64(len(s.sessions)))
	return nil
}

// Transcript returns a copy of the stored turns for the session.
func (s *Service) Transcript(sessionID string) ([]modelchat.Message, error) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil, ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	copied := make([]modelchat.Message, len(sess.transcript))
	copy(copied, sess.transcript)
	return copied, nil
}

// Count reports the number of live sessions.
func (s *Service) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// resolve returns the session for id, creating one when the id is empty or
// unknown. The idle sweep runs first, so a session past the timeout is gone
// by the time its old id is looked up.
func (s *Service) resolve(id string) (*session, string, bool) {
	now := s.now()

	s.mu.Lock()
	s.evictIdleLocked(now)
	if id != "" {
		if sess, ok := s.sessions[id]; ok {
			sess.lastActive = now
			s.mu.Unlock()
			return sess, "", false
		}
	}
	s.mu.Unlock()

	// Build and pre-seed the engine outside the registry lock; only the map
	// insert needs mutual exclusion.
	sess := &session{
		id:        uuid.NewString(),
		engine:    dialog.New(s.verifier),
		createdAt: now,
	}
	welcome := sess.engine.Start()
	sess.record(senderBot, welcome)
	sess.lastActive = now

	s.mu.Lock()
	s.sessions[sess.id] = sess
	metrics.LiveSessions.Set(float64(len(s.sessions)))
	s.mu.Unlock()

	log.Debug().Str("component", "chat").Str("session_id", sess.id).Msg("session created")
	return sess, welcome, true
}

// evictIdleLocked drops sessions idle beyond the timeout. It runs inline
// under the registry mutex on every resolve; a session mid-processing is
// skipped via TryLock so a long verification call cannot be swept away.
func (s *Service) evictIdleLocked(now time.Time) {
	for id, sess := range s.sessions {
		if now.Sub(sess.lastActive) < s.idleTimeout {
			continue
		}
		if !sess.mu.TryLock() {
			continue
		}
		sess.mu.Unlock()
		delete(s.sessions, id)
		metrics.SessionsEvicted.Inc()
		log.Debug().Str("component", "chat").Str("session_id", id).Msg("idle session evicted")
	}
	metrics.LiveSessions.Set(float64(len(s.sessions)))
}

func (s *Service) snapshotOf(sess *session) modelchat.Session {
	s.mu.Lock()
	last := sess.lastActive
	s.mu.Unlock()

	sess.mu.Lock()
	state := string(sess.engine.State())
	sess.mu.Unlock()

	return modelchat.Session{
		ID:         sess.id,
		State:      state,
		CreatedAt:  sess.createdAt,
		LastActive: last,
	}
}
