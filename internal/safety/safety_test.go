package safety

import (
	"strings"
	"testing"
)

func TestOffTopic(t *testing.T) {
	cases := map[string]bool{
		"Can you help me with my Python homework?": true,
		"what do you think about the ELECTION":     true,
		"I can't sleep before my exams":            false,
		"":                                         false,
	}
	for text, want := range cases {
		if got := OffTopic(text); got != want {
			t.Fatalf("%q: expected %v, got %v", text, want, got)
		}
	}
}

func TestDefaultResources(t *testing.T) {
	res := DefaultResources()
	if res.EmergencyNumber != "112" {
		t.Fatalf("unexpected emergency number %q", res.EmergencyNumber)
	}
	if len(res.Helplines) != 4 || res.Helplines[0].Name != "KIRAN" {
		t.Fatalf("unexpected helplines: %+v", res.Helplines)
	}
	if len(res.Grounding) != 5 || len(res.SafetySteps) != 3 {
		t.Fatalf("unexpected steps: %d/%d", len(res.Grounding), len(res.SafetySteps))
	}
	if !strings.Contains(CrisisReply, "1800-599-0019") {
		t.Fatalf("crisis reply must include the KIRAN number")
	}
}
