package mood

import (
	"strings"
	"sync"
	"testing"
)

func TestDetectMoodSingleLabel(t *testing.T) {
	c := NewDefaultClassifier()
	for _, k := range DefaultKeywords() {
		for _, trigger := range k.Triggers {
			if got := c.DetectMood("today I am " + trigger); got != k.Label {
				t.Fatalf("trigger %q: expected %s, got %q", trigger, k.Label, got)
			}
		}
	}
}

func TestDetectMoodDeclarationOrderWins(t *testing.T) {
	c := NewDefaultClassifier()
	cases := []struct {
		text string
		want Label
	}{
		{"so tired but also happy", Happy},
		{"lonely and sad", Sad},
		{"overwhelmed and scared", Anxious},
		{"exhausted, furious", Angry},
	}
	for _, tc := range cases {
		if got := c.DetectMood(tc.text); got != tc.want {
			t.Fatalf("%q: expected %s, got %q", tc.text, tc.want, got)
		}
	}
}

func TestDetectMoodNoMatch(t *testing.T) {
	c := NewDefaultClassifier()
	for _, text := range []string{"", "nothing special", "what is the weather"} {
		if got := c.DetectMood(text); got != None {
			t.Fatalf("%q: expected no mood, got %q", text, got)
		}
	}
}

func TestClassifierIsCaseInsensitive(t *testing.T) {
	c := NewDefaultClassifier()
	upper := c.Classify("I feel SAD today")
	lower := c.Classify("i feel sad today")
	if upper != lower {
		t.Fatalf("expected identical results, got %+v and %+v", upper, lower)
	}
	if !c.ContainsCrisis("I Want To END MY LIFE") {
		t.Fatalf("expected crisis for upper-case trigger")
	}
}

func TestContainsCrisis(t *testing.T) {
	c := NewDefaultClassifier()
	for _, trigger := range DefaultCrisisTriggers() {
		if !c.ContainsCrisis("lately " + trigger + " keeps coming up") {
			t.Fatalf("expected crisis for %q", trigger)
		}
	}
	if c.ContainsCrisis("I feel happy today") {
		t.Fatalf("expected no crisis")
	}
	if c.ContainsCrisis("") {
		t.Fatalf("expected no crisis for empty input")
	}
}

func TestClassifyScenarios(t *testing.T) {
	c := NewDefaultClassifier()
	cases := []struct {
		text   string
		mood   Label
		crisis bool
	}{
		{"I'm so stressed about my exams", Stressed, false},
		{"I feel anxious and want to end my life", Anxious, true},
		{"just feeling okay today", Okay, false},
		{"nothing special", None, false},
		{"", None, false},
	}
	for _, tc := range cases {
		got := c.Classify(tc.text)
		if got.Mood != tc.mood || got.Crisis != tc.crisis {
			t.Fatalf("%q: expected %s/%v, got %+v", tc.text, tc.mood, tc.crisis, got)
		}
		if got.HasMood() != (tc.mood != None) {
			t.Fatalf("%q: HasMood mismatch", tc.text)
		}
	}
}

func TestNewClassifierCopiesTables(t *testing.T) {
	moods := []Keywords{{Label: Tired, Triggers: []string{"Sleepy"}}}
	crisis := []string{"Overdose"}
	c := NewClassifier(moods, crisis)

	moods[0].Triggers[0] = "zzz"
	crisis[0] = "zzz"

	if got := c.DetectMood("so sleepy"); got != Tired {
		t.Fatalf("expected tired, got %q", got)
	}
	if !c.ContainsCrisis("overdose") {
		t.Fatalf("expected crisis trigger to survive caller edits")
	}
}

func TestClassifierConcurrentUse(t *testing.T) {
	c := NewDefaultClassifier()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			text := strings.Repeat("calm ", i) + "feeling lonely"
			if got := c.Classify(text); got.Mood != Lonely || got.Crisis {
				t.Errorf("unexpected result %+v", got)
			}
		}(i)
	}
	wg.Wait()
}

func TestParseLabel(t *testing.T) {
	if l, ok := ParseLabel("anxious"); !ok || l != Anxious {
		t.Fatalf("expected anxious, got %q/%v", l, ok)
	}
	for _, bad := range []string{"", "Happy", "excited"} {
		if _, ok := ParseLabel(bad); ok {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
	if len(LabelStrings()) != 8 || LabelStrings()[0] != "happy" {
		t.Fatalf("unexpected label list: %v", LabelStrings())
	}
}
