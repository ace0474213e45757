package mood

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/easeaico/zetazen/internal/types"
)

// MaxNoteLength bounds a journal note, in characters.
const MaxNoteLength = 1000

var (
	ErrInvalidLabel = errors.New("invalid mood value")
	ErrNoteTooLong  = errors.New("note cannot exceed 1000 characters")
)

// Repo stores mood logs.
type Repo interface {
	Create(ctx context.Context, log *types.MoodLog) error
	// ListSince returns logs with ts >= since, newest first. since <= 0 means all.
	ListSince(ctx context.Context, sessionID int64, since int64) ([]types.MoodLog, error)
	DeleteAll(ctx context.Context, sessionID int64) (int64, error)
}

// Range is a journal look-back window.
type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	RangeAll Range = "all"
)

// ParseRange accepts 7d, 30d, all; an empty string means 7d.
func ParseRange(s string) (Range, bool) {
	switch Range(s) {
	case "":
		return Range7d, true
	case Range7d, Range30d, RangeAll:
		return Range(s), true
	default:
		return "", false
	}
}

// Since returns the cutoff in Unix milliseconds, or 0 for all.
func (r Range) Since(now time.Time) int64 {
	switch r {
	case Range7d:
		return now.Add(-7 * 24 * time.Hour).UnixMilli()
	case Range30d:
		return now.Add(-30 * 24 * time.Hour).UnixMilli()
	default:
		return 0
	}
}

// LabelCount is one bar of the journal chart.
type LabelCount struct {
	Mood  Label `json:"mood"`
	Count int   `json:"count"`
}

// Summary aggregates a journal window.
type Summary struct {
	Range  Range        `json:"range"`
	Total  int          `json:"total"`
	Latest Label        `json:"latest,omitempty"`
	Counts []LabelCount `json:"counts"`
}

// Service records and reads the mood journal.
type Service struct {
	repo    Repo
	nowFunc func() time.Time
}

// NewService returns a journal service.
func NewService(repo Repo) *Service {
	return &Service{
		repo:    repo,
		nowFunc: time.Now,
	}
}

// Record stores one entry. A zero ts means now.
func (s *Service) Record(ctx context.Context, sessionID int64, label Label, note string, ts int64) (*types.MoodLog, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("mood service not configured")
	}
	if _, ok := ParseLabel(string(label)); !ok {
		return nil, ErrInvalidLabel
	}
	if utf8.RuneCountInString(note) > MaxNoteLength {
		return nil, ErrNoteTooLong
	}
	if ts == 0 {
		ts = s.nowFunc().UnixMilli()
	}

	entry := &types.MoodLog{
		SessionID: sessionID,
		Mood:      string(label),
		Note:      note,
		TS:        ts,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to save mood log: %w", err)
	}
	return entry, nil
}

// History lists entries in the window, newest first.
func (s *Service) History(ctx context.Context, sessionID int64, r Range) ([]types.MoodLog, error) {
	logs, err := s.repo.ListSince(ctx, sessionID, r.Since(s.nowFunc()))
	if err != nil {
		return nil, fmt.Errorf("failed to list mood logs: %w", err)
	}
	return logs, nil
}

// Clear deletes every entry for the session.
func (s *Service) Clear(ctx context.Context, sessionID int64) (int64, error) {
	n, err := s.repo.DeleteAll(ctx, sessionID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete mood logs: %w", err)
	}
	return n, nil
}

// Summarize counts entries per label in declaration order.
func (s *Service) Summarize(ctx context.Context, sessionID int64, r Range) (Summary, error) {
	logs, err := s.History(ctx, sessionID, r)
	if err != nil {
		return Summary{}, err
	}

	counts := make(map[Label]int, len(logs))
	for _, l := range logs {
		counts[Label(l.Mood)]++
	}

	summary := Summary{Range: r, Total: len(logs)}
	if len(logs) > 0 {
		summary.Latest = Label(logs[0].Mood)
	}
	for _, l := range Labels() {
		summary.Counts = append(summary.Counts, LabelCount{Mood: l, Count: counts[l]})
	}
	return summary, nil
}
