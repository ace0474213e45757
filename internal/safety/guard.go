package safety

import "strings"

// OffTopicReply steers the user back to wellbeing topics.
const OffTopicReply = "I'm here to support mental wellbeing. Could we focus on how you're feeling or anything weighing on you? " +
	"If it helps, we can try a quick grounding exercise or talk through what's on your mind."

var offTopicKeywords = []string{
	"code", "program", "javascript", "python", "leetcode", "stocks", "crypto",
	"politics", "election", "nsfw", "adult", "explicit", "gambling",
}

// OffTopic reports whether text asks for something outside mental wellness.
func OffTopic(text string) bool {
	lower := strings.ToLower(text)
	for _, k := range offTopicKeywords {
		if strings.Contains(lower, k) {
			return true
		}
	}
	return false
}
