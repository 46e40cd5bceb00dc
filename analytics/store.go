package analytics

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "session:"
	historyKeyPrefix = "session_history:"
	profileKeyPrefix = "profile:"

	defaultSessionTTL = time.Hour
	historyTTL        = 30 * 24 * time.Hour

	connectTimeout = 2 * time.Second
)

// Store persists analytics in Redis. When Redis is unreachable at
// construction the store transparently falls back to process memory, so the
// rest of the system works the same either way.
type Store struct {
	redis      *redis.Client
	sessionTTL time.Duration

	mu       sync.RWMutex
	sessions map[string]SessionAnalytics
	history  map[string]SessionAnalytics
	profiles map[string]UserProfile
}

type StoreOption func(*Store)

// WithSessionTTL overrides the live-session retention period.
func WithSessionTTL(ttl time.Duration) StoreOption {
	return func(s *Store) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

// NewStore connects to Redis at redisURL. A failed connection is not an
// error; the store logs it and keeps everything in memory instead.
func NewStore(ctx context.Context, redisURL string, opts ...StoreOption) *Store {
	store := &Store{
		sessionTTL: defaultSessionTTL,
		sessions:   map[string]SessionAnalytics{},
		history:    map[string]SessionAnalytics{},
		profiles:   map[string]UserProfile{},
	}
	for _, opt := range opts {
		opt(store)
	}

	redisOptions, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.WarnContext(ctx, "Invalid redis URL, using in-memory analytics", "error", err)
		return store
	}

	client := redis.NewClient(redisOptions)
	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.WarnContext(ctx, "Redis unreachable, using in-memory analytics", "error", err)
		_ = client.Close()
		return store
	}

	store.redis = client
	return store
}

// Persistent reports whether the store is backed by Redis.
func (s *Store) Persistent() bool {
	return s.redis != nil
}

func (s *Store) Close() error {
	if s.redis != nil {
		return s.redis.Close()
	}
	return nil
}

// SaveSession upserts the live-session record.
func (s *Store) SaveSession(ctx context.Context, session SessionAnalytics) error {
	if s.redis == nil {
		s.mu.Lock()
		s.sessions[session.SessionID] = session
		s.mu.Unlock()
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session analytics: %w", err)
	}
	if err := s.redis.Set(ctx, sessionKeyPrefix+session.SessionID, payload, s.sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to store session analytics: %w", err)
	}
	return nil
}

// GetSession looks the session up in the live records first, then in the
// archived history.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*SessionAnalytics, error) {
	if s.redis == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if session, ok := s.sessions[sessionID]; ok {
			return &session, nil
		}
		if session, ok := s.history[sessionID]; ok {
			return &session, nil
		}
		return nil, fmt.Errorf("session %s not found", sessionID)
	}

	for _, key := range []string{sessionKeyPrefix + sessionID, historyKeyPrefix + sessionID} {
		payload, err := s.redis.Get(ctx, key).Bytes()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load session analytics: %w", err)
		}

		session := SessionAnalytics{}
		if err := json.Unmarshal(payload, &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session analytics: %w", err)
		}
		return &session, nil
	}

	return nil, fmt.Errorf("session %s not found", sessionID)
}

// ArchiveSession moves a finished session into long-term history.
func (s *Store) ArchiveSession(ctx context.Context, session SessionAnalytics) error {
	if s.redis == nil {
		s.mu.Lock()
		delete(s.sessions, session.SessionID)
		s.history[session.SessionID] = session
		s.mu.Unlock()
		return nil
	}

	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session analytics: %w", err)
	}
	if err := s.redis.Set(ctx, historyKeyPrefix+session.SessionID, payload, historyTTL).Err(); err != nil {
		return fmt.Errorf("failed to archive session analytics: %w", err)
	}
	if err := s.redis.Del(ctx, sessionKeyPrefix+session.SessionID).Err(); err != nil {
		return fmt.Errorf("failed to drop live session record: %w", err)
	}
	return nil
}

// SaveProfile upserts a user profile. Profiles do not expire.
func (s *Store) SaveProfile(ctx context.Context, profile UserProfile) error {
	if s.redis == nil {
		s.mu.Lock()
		s.profiles[profile.UserID] = profile
		s.mu.Unlock()
		return nil
	}

	payload, err := json.Marshal(profile)
	if err != nil {
		return fmt.Errorf("failed to marshal user profile: %w", err)
	}
	if err := s.redis.Set(ctx, profileKeyPrefix+profile.UserID, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store user profile: %w", err)
	}
	return nil
}

// GetProfile loads a user profile, or reports not-found.
func (s *Store) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	if s.redis == nil {
		s.mu.RLock()
		defer s.mu.RUnlock()
		if profile, ok := s.profiles[userID]; ok {
			return &profile, nil
		}
		return nil, fmt.Errorf("profile %s not found", userID)
	}

	payload, err := s.redis.Get(ctx, profileKeyPrefix+userID).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("profile %s not found", userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user profile: %w", err)
	}

	profile := UserProfile{}
	if err := json.Unmarshal(payload, &profile); err != nil {
		return nil, fmt.Errorf("failed to unmarshal user profile: %w", err)
	}
	return &profile, nil
}
