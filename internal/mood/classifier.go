// Package mood tags chat messages with a mood label and a crisis flag, and keeps the
// per-session mood journal.
package mood

import "strings"

// Classifier matches lower-cased text against fixed keyword tables.
// It holds no mutable state and is safe for concurrent use.
type Classifier struct {
	moods  []Keywords
	crisis []string
}

// NewClassifier copies the tables so later edits by the caller have no effect.
func NewClassifier(moods []Keywords, crisis []string) *Classifier {
	c := &Classifier{
		moods:  make([]Keywords, 0, len(moods)),
		crisis: lowerAll(crisis),
	}
	for _, k := range moods {
		c.moods = append(c.moods, Keywords{Label: k.Label, Triggers: lowerAll(k.Triggers)})
	}
	return c
}

// NewDefaultClassifier returns a Classifier over the built-in tables.
func NewDefaultClassifier() *Classifier {
	return NewClassifier(DefaultKeywords(), DefaultCrisisTriggers())
}

// DetectMood returns the first label, in table order, with a trigger contained in text.
func (c *Classifier) DetectMood(text string) Label {
	return c.detectMood(strings.ToLower(text))
}

// ContainsCrisis reports whether text contains any crisis trigger.
func (c *Classifier) ContainsCrisis(text string) bool {
	return c.containsCrisis(strings.ToLower(text))
}

// Classify runs both checks on the same normalized text.
func (c *Classifier) Classify(text string) Result {
	lower := strings.ToLower(text)
	return Result{
		Crisis: c.containsCrisis(lower),
		Mood:   c.detectMood(lower),
	}
}

func (c *Classifier) detectMood(lower string) Label {
	for _, k := range c.moods {
		if containsAny(lower, k.Triggers) {
			return k.Label
		}
	}
	return None
}

func (c *Classifier) containsCrisis(lower string) bool {
	return containsAny(lower, c.crisis)
}

func containsAny(text string, triggers []string) bool {
	for _, t := range triggers {
		if t != "" && strings.Contains(text, t) {
			return true
		}
	}
	return false
}

func lowerAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.ToLower(s)
	}
	return out
}
