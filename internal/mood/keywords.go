package mood

// DefaultKeywords returns the mood keyword table. Order is match priority.
func DefaultKeywords() []Keywords {
	return []Keywords{
		{Label: Happy, Triggers: []string{"happy", "great", "good", "excited", "proud", "grateful"}},
		{Label: Okay, Triggers: []string{"okay", "fine", "alright", "neutral"}},
		{Label: Sad, Triggers: []string{"sad", "down", "depressed", "cry", "crying", "empty"}},
		{Label: Anxious, Triggers: []string{"anxious", "anxiety", "worried", "panic", "nervous", "scared"}},
		{Label: Angry, Triggers: []string{"angry", "mad", "furious", "rage", "annoyed", "irritated"}},
		{Label: Stressed, Triggers: []string{"stressed", "overwhelmed", "pressure", "burnt", "burned out", "burnout"}},
		{Label: Lonely, Triggers: []string{"lonely", "alone", "isolated"}},
		{Label: Tired, Triggers: []string{"tired", "exhausted", "sleepy", "drained", "fatigued"}},
	}
}

// DefaultCrisisTriggers returns phrases that signal self-harm risk.
func DefaultCrisisTriggers() []string {
	return []string{
		"suicide",
		"kill myself",
		"end my life",
		"self-harm",
		"self harm",
		"cutting",
		"overdose",
		"harm myself",
	}
}
