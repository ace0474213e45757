// Package session manages anonymous chat sessions keyed by a client anon id.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/easeaico/zetazen/internal/types"
)

// ErrNotFound is returned when no session exists for an anon id.
var ErrNotFound = errors.New("session not found")

// ErrInvalidAnonID rejects blank anon ids.
var ErrInvalidAnonID = errors.New("anon_id must be a non-empty string")

// Repo persists sessions.
type Repo interface {
	GetByAnonID(ctx context.Context, anonID string) (*types.Session, error)
	Upsert(ctx context.Context, anonID string, now int64) (*types.Session, error)
	// Touch returns ErrNotFound when the session no longer exists.
	Touch(ctx context.Context, id int64, now int64) error
}

// Cache memoizes anon id lookups. Get returns nil, nil on a miss.
type Cache interface {
	Get(ctx context.Context, anonID string) (*types.Session, error)
	Set(ctx context.Context, sess *types.Session) error
	Delete(ctx context.Context, anonID string) error
}

// Service resolves and upserts sessions.
type Service struct {
	repo    Repo
	cache   Cache
	nowFunc func() time.Time
}

// NewService returns a session service. cache may be nil.
func NewService(repo Repo, cache Cache) *Service {
	return &Service{
		repo:    repo,
		cache:   cache,
		nowFunc: time.Now,
	}
}

// Upsert creates the session or refreshes its last-seen time.
func (s *Service) Upsert(ctx context.Context, anonID string) (*types.Session, error) {
	if strings.TrimSpace(anonID) == "" {
		return nil, ErrInvalidAnonID
	}
	sess, err := s.repo.Upsert(ctx, anonID, s.nowFunc().UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to upsert session: %w", err)
	}
	s.remember(ctx, sess)
	return sess, nil
}

// Resolve looks up the session for anonID and marks it seen.
func (s *Service) Resolve(ctx context.Context, anonID string) (*types.Session, error) {
	if strings.TrimSpace(anonID) == "" {
		return nil, ErrInvalidAnonID
	}

	sess := s.cached(ctx, anonID)
	if sess == nil {
		found, err := s.repo.GetByAnonID(ctx, anonID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("failed to get session: %w", err)
		}
		sess = found
		s.remember(ctx, sess)
	}

	now := s.nowFunc().UnixMilli()
	if err := s.repo.Touch(ctx, sess.ID, now); err != nil {
		if errors.Is(err, ErrNotFound) {
			s.forget(ctx, anonID)
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}
	sess.LastSeenAt = now
	return sess, nil
}

func (s *Service) cached(ctx context.Context, anonID string) *types.Session {
	if s.cache == nil {
		return nil
	}
	sess, err := s.cache.Get(ctx, anonID)
	if err != nil {
		slog.Warn("session cache read failed", "error", err.Error())
		return nil
	}
	return sess
}

func (s *Service) remember(ctx context.Context, sess *types.Session) {
	if s.cache == nil || sess == nil {
		return
	}
	if err := s.cache.Set(ctx, sess); err != nil {
		slog.Warn("session cache write failed", "session_id", sess.ID, "error", err.Error())
	}
}

func (s *Service) forget(ctx context.Context, anonID string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, anonID); err != nil {
		slog.Warn("session cache evict failed", "error", err.Error())
	}
}
