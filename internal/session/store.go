// Package session maps session ids to their vector collection and
// conversation history for the process lifetime.
package session

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
	"github.com/studyassist/rag-backend/internal/config"
	"github.com/studyassist/rag-backend/internal/entity"
)

// record wraps a session with its own mutex so concurrent chats against
// the same session cannot interleave history appends.
type record struct {
	mu      sync.Mutex
	session entity.Session
}

// Store is an in-memory session map. With TTL 0 sessions never expire;
// a positive TTL bounds their lifetime and expired entries are purged on
// the cleanup interval.
type Store struct {
	cache *cache.Cache
}

func NewStore(cfg config.SessionConfig) *Store {
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = cache.NoExpiration
	}
	return &Store{
		cache: cache.New(ttl, cfg.CleanupInterval),
	}
}

// Create registers a new session owning the given collection and returns
// its freshly issued id.
func (s *Store) Create(collection string, chunkCount int) entity.Session {
	sess := entity.Session{
		ID:         uuid.New().String(),
		Collection: collection,
		ChunkCount: chunkCount,
		CreatedAt:  time.Now(),
	}
	s.cache.Set(sess.ID, &record{session: sess}, cache.DefaultExpiration)
	return sess
}

// Get returns a snapshot of the session; mutating the returned value does
// not affect the store.
func (s *Store) Get(sessionID string) (entity.Session, bool) {
	rec, ok := s.lookup(sessionID)
	if !ok {
		return entity.Session{}, false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return snapshot(&rec.session), true
}

// AppendExchange appends the question/answer pair to the session history
// atomically.
func (s *Store) AppendExchange(sessionID, question, answer string) bool {
	rec, ok := s.lookup(sessionID)
	if !ok {
		return false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	rec.session.History = append(rec.session.History,
		entity.ConversationTurn{Role: entity.RoleUser, Content: question},
		entity.ConversationTurn{Role: entity.RoleAssistant, Content: answer},
	)
	return true
}

// Delete removes the session and returns its final snapshot so the caller
// can release the owned vector collection.
func (s *Store) Delete(sessionID string) (entity.Session, bool) {
	rec, ok := s.lookup(sessionID)
	if !ok {
		return entity.Session{}, false
	}

	s.cache.Delete(sessionID)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return snapshot(&rec.session), true
}

// List returns the active session ids in stable order.
func (s *Store) List() []string {
	items := s.cache.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (s *Store) lookup(sessionID string) (*record, bool) {
	if x, found := s.cache.Get(sessionID); found {
		return x.(*record), true
	}
	return nil, false
}

func snapshot(sess *entity.Session) entity.Session {
	out := *sess
	out.History = make([]entity.ConversationTurn, len(sess.History))
	copy(out.History, sess.History)
	return out
}
