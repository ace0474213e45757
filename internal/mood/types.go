package mood

// Label is a mood tag attached to an utterance.
type Label string

const (
	// None means no mood keyword matched.
	None     Label = ""
	Happy    Label = "happy"
	Okay     Label = "okay"
	Sad      Label = "sad"
	Anxious  Label = "anxious"
	Angry    Label = "angry"
	Stressed Label = "stressed"
	Lonely   Label = "lonely"
	Tired    Label = "tired"
)

// Labels lists every mood in declaration order.
func Labels() []Label {
	return []Label{Happy, Okay, Sad, Anxious, Angry, Stressed, Lonely, Tired}
}

// LabelStrings returns Labels as plain strings, for error payloads.
func LabelStrings() []string {
	labels := Labels()
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		out = append(out, string(l))
	}
	return out
}

// ParseLabel validates an external string into a Label.
func ParseLabel(s string) (Label, bool) {
	for _, l := range Labels() {
		if string(l) == s {
			return l, true
		}
	}
	return None, false
}

// Result is the outcome of classifying one utterance.
type Result struct {
	Crisis bool
	Mood   Label
}

// HasMood reports whether a mood label matched.
func (r Result) HasMood() bool {
	return r.Mood != None
}

// Keywords binds a label to its trigger substrings.
type Keywords struct {
	Label    Label
	Triggers []string
}
