// Package chat stores conversation turns, runs each user message through the
// mood classifier and produces the assistant reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"google.golang.org/adk/model"
	"google.golang.org/genai"

	"github.com/easeaico/zetazen/internal/models"
	"github.com/easeaico/zetazen/internal/mood"
	"github.com/easeaico/zetazen/internal/observability/metrics"
	"github.com/easeaico/zetazen/internal/prompt"
	"github.com/easeaico/zetazen/internal/safety"
	"github.com/easeaico/zetazen/internal/types"
)

const (
	// MaxContentLength bounds a single message, in characters.
	MaxContentLength = 4000

	DefaultListLimit = 50
	MaxListLimit     = 200

	maxTimestampSkew = 365 * 24 * time.Hour
)

// Fallback replies used when the model cannot answer.
const (
	EmptyReplyFallback = "Thank you for sharing. I'm here with you. Would you like a short grounding exercise or to unpack what's weighing on you today?"
	ErrorReplyFallback = "I'm here to listen. Let's take a slow breath together. Would you like a 30-second box-breathing exercise or to share a bit more about how you're feeling?"
)

var (
	ErrInvalidRole      = errors.New("role must be 'user' or 'assistant'")
	ErrEmptyContent     = errors.New("content must be a non-empty string")
	ErrContentTooLong   = errors.New("content cannot exceed 4000 characters")
	ErrInvalidTimestamp = errors.New("timestamp must be within one year of now")
)

// MessageRepo persists chat messages.
type MessageRepo interface {
	Create(ctx context.Context, msg *types.Message) error
	// List returns messages older than before, oldest first. A nil before means no cursor.
	List(ctx context.Context, sessionID int64, before *int64, limit int) ([]types.Message, error)
	// Recent returns the newest limit messages, oldest first.
	Recent(ctx context.Context, sessionID int64, limit int) ([]types.Message, error)
}

// MoodRecorder stores a detected mood in the journal.
type MoodRecorder interface {
	Record(ctx context.Context, sessionID int64, label mood.Label, note string, ts int64) (*types.MoodLog, error)
}

// Deps wires a Service.
type Deps struct {
	LLM          model.LLM
	Builder      *prompt.Builder
	Classifier   *mood.Classifier
	Messages     MessageRepo
	Moods        MoodRecorder
	Metrics      *metrics.ChatMetrics
	HistoryLimit int
}

// Service handles the chat flow for a session.
type Service struct {
	llm          model.LLM
	builder      *prompt.Builder
	classifier   *mood.Classifier
	messages     MessageRepo
	moods        MoodRecorder
	metrics      *metrics.ChatMetrics
	historyLimit int
	nowFunc      func() time.Time
}

// NewService returns a chat service. LLM may be nil, in which case every
// generated reply falls back to the fixed error reply.
func NewService(deps Deps) *Service {
	if deps.Builder == nil {
		deps.Builder = prompt.NewBuilder(deps.HistoryLimit)
	}
	if deps.Classifier == nil {
		deps.Classifier = mood.NewDefaultClassifier()
	}
	if deps.HistoryLimit <= 0 {
		deps.HistoryLimit = 10
	}
	return &Service{
		llm:          deps.LLM,
		builder:      deps.Builder,
		classifier:   deps.Classifier,
		messages:     deps.Messages,
		moods:        deps.Moods,
		metrics:      deps.Metrics,
		historyLimit: deps.HistoryLimit,
		nowFunc:      time.Now,
	}
}

// Append validates and stores a client-authored message.
func (s *Service) Append(ctx context.Context, sessionID int64, role, content string, ts int64) (*types.Message, error) {
	if role != types.RoleUser && role != types.RoleAssistant {
		return nil, ErrInvalidRole
	}
	content, err := validateContent(content)
	if err != nil {
		return nil, err
	}
	now := s.nowFunc()
	t := time.UnixMilli(ts)
	if t.Before(now.Add(-maxTimestampSkew)) || t.After(now.Add(maxTimestampSkew)) {
		return nil, ErrInvalidTimestamp
	}

	msg := &types.Message{SessionID: sessionID, Role: role, Content: content, Timestamp: ts}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}
	return msg, nil
}

// List pages through a session's messages. limit is clamped to [1, MaxListLimit].
func (s *Service) List(ctx context.Context, sessionID int64, before *int64, limit int) ([]types.Message, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	msgs, err := s.messages.List(ctx, sessionID, before, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return msgs, nil
}

// Reply generates an assistant answer for input given prior turns. It never
// fails: model errors and empty answers map to fixed fallbacks.
func (s *Service) Reply(ctx context.Context, history []prompt.Turn, input string, moodHint mood.Label) string {
	input = truncate(strings.TrimSpace(input), MaxContentLength)
	if input == "" {
		s.metrics.ObserveReply(metrics.OutcomeEmpty)
		return ""
	}
	if safety.OffTopic(input) {
		s.metrics.ObserveReply(metrics.OutcomeOffTopic)
		return safety.OffTopicReply
	}
	if s.llm == nil {
		s.metrics.ObserveReply(metrics.OutcomeFallback)
		return ErrorReplyFallback
	}

	p, err := s.builder.Build(prompt.BuildContext{
		History:   history,
		Mood:      string(moodHint),
		UserInput: input,
	})
	if err != nil {
		slog.Error("failed to build prompt", "error", err.Error())
		s.metrics.ObserveReply(metrics.OutcomeFallback)
		return ErrorReplyFallback
	}

	temperature := float32(0.7)
	req := &model.LLMRequest{
		Contents: p.Contents,
		Config: &genai.GenerateContentConfig{
			SystemInstruction: p.System,
			Temperature:       &temperature,
			MaxOutputTokens:   512,
		},
	}

	started := time.Now()
	resp, err := s.generate(ctx, req)
	s.metrics.ObserveLLMLatency(time.Since(started).Seconds())
	if err != nil {
		slog.Error("failed to generate reply", "model", s.llm.Name(), "error", err.Error())
		s.metrics.ObserveReply(metrics.OutcomeFallback)
		return ErrorReplyFallback
	}

	var text string
	if resp != nil {
		text = strings.TrimSpace(models.ContentText(resp.Content))
	}
	if text == "" {
		s.metrics.ObserveReply(metrics.OutcomeFallback)
		return EmptyReplyFallback
	}
	s.metrics.ObserveReply(metrics.OutcomeLLM)
	return text
}

// Outcome is the result of Send.
type Outcome struct {
	UserMessage      *types.Message
	AssistantMessage *types.Message
	Mood             mood.Label
	Crisis           bool
	Resources        *safety.Resources
}

// Send stores a user message, classifies it and stores the assistant reply.
// A crisis message gets the fixed crisis reply and resources; the model is not called.
func (s *Service) Send(ctx context.Context, sessionID int64, text string) (*Outcome, error) {
	content, err := validateContent(text)
	if err != nil {
		return nil, err
	}

	history, err := s.messages.Recent(ctx, sessionID, s.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	now := s.nowFunc().UnixMilli()
	userMsg := &types.Message{SessionID: sessionID, Role: types.RoleUser, Content: content, Timestamp: now}
	if err := s.messages.Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("failed to save message: %w", err)
	}

	result := s.classifier.Classify(content)
	s.metrics.ObserveClassification(string(result.Mood), result.Crisis)

	if result.HasMood() && s.moods != nil {
		if _, err := s.moods.Record(ctx, sessionID, result.Mood, content, now); err != nil {
			slog.Warn("failed to record detected mood", "session_id", sessionID, "mood", result.Mood, "error", err.Error())
		}
	}

	out := &Outcome{UserMessage: userMsg, Mood: result.Mood, Crisis: result.Crisis}

	var reply string
	if result.Crisis {
		slog.Warn("crisis message detected", "session_id", sessionID)
		s.metrics.ObserveReply(metrics.OutcomeCrisis)
		reply = safety.CrisisReply
		resources := safety.DefaultResources()
		out.Resources = &resources
	} else {
		reply = s.Reply(ctx, prompt.TurnsFromMessages(history), content, result.Mood)
	}

	replyTS := s.nowFunc().UnixMilli()
	if replyTS <= now {
		replyTS = now + 1
	}
	assistantMsg := &types.Message{SessionID: sessionID, Role: types.RoleAssistant, Content: reply, Timestamp: replyTS}
	if err := s.messages.Create(ctx, assistantMsg); err != nil {
		return nil, fmt.Errorf("failed to save reply: %w", err)
	}
	out.AssistantMessage = assistantMsg
	return out, nil
}

func (s *Service) generate(ctx context.Context, req *model.LLMRequest) (*model.LLMResponse, error) {
	var resp *model.LLMResponse
	var err error
	s.llm.GenerateContent(ctx, req, false)(func(r *model.LLMResponse, e error) bool {
		resp = r
		err = e
		return false
	})
	return resp, err
}

func validateContent(content string) (string, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return "", ErrEmptyContent
	}
	if utf8.RuneCountInString(content) > MaxContentLength {
		return "", ErrContentTooLong
	}
	return content, nil
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
