// Package prompt assembles model requests for the wellness assistant.
package prompt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/easeaico/zetazen/internal/types"
)

// Turn is one prior chat message supplied as context.
type Turn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// BuildContext contains all inputs for prompt assembly.
type BuildContext struct {
	History   []Turn
	Mood      string
	UserInput string
}

// Prompt is a system instruction plus ordered conversation contents.
type Prompt struct {
	System   *genai.Content
	Contents []*genai.Content
}

// Builder assembles prompts.
type Builder struct {
	historyLimit int
	nowFunc      func() time.Time
}

// NewBuilder creates a prompt Builder.
func NewBuilder(historyLimit int) *Builder {
	if historyLimit <= 0 {
		historyLimit = 10
	}
	return &Builder{
		historyLimit: historyLimit,
		nowFunc:      time.Now,
	}
}

// Build renders the system instruction and maps history to model roles.
func (b *Builder) Build(ctx BuildContext) (Prompt, error) {
	if strings.TrimSpace(ctx.UserInput) == "" {
		return Prompt{}, fmt.Errorf("user input is required")
	}

	data := struct {
		AssistantName   string
		EmergencyNumber string
		Helpline        string
		Mood            string
		MoodGuidance    string
		Now             string
	}{
		AssistantName:   "Bloom",
		EmergencyNumber: "112",
		Helpline:        "KIRAN 24x7 helpline: 1800-599-0019",
		Mood:            ctx.Mood,
		MoodGuidance:    MoodGuidance(ctx.Mood),
		Now:             b.nowFunc().Format(time.RFC3339),
	}

	var buf bytes.Buffer
	if err := systemTemplate.Execute(&buf, data); err != nil {
		return Prompt{}, fmt.Errorf("failed to build prompt: %w", err)
	}

	history := ctx.History
	if len(history) > b.historyLimit {
		history = history[len(history)-b.historyLimit:]
	}

	contents := make([]*genai.Content, 0, len(history)+1)
	for _, turn := range history {
		text := strings.TrimSpace(turn.Content)
		if text == "" {
			continue
		}
		role := genai.Role(genai.RoleUser)
		if turn.Role != types.RoleUser {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(text, role))
	}
	contents = append(contents, genai.NewContentFromText(ctx.UserInput, genai.RoleUser))

	return Prompt{
		System:   genai.NewContentFromText(buf.String(), genai.RoleUser),
		Contents: contents,
	}, nil
}

// TurnsFromMessages converts stored messages to prompt turns.
func TurnsFromMessages(messages []types.Message) []Turn {
	turns := make([]Turn, 0, len(messages))
	for _, m := range messages {
		turns = append(turns, Turn{Role: m.Role, Content: m.Content})
	}
	return turns
}
