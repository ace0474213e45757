package models

import (
	"strings"

	"google.golang.org/genai"
)

// ContentText concatenates the text parts of content.
func ContentText(content *genai.Content) string {
	if content == nil {
		return ""
	}
	var sb strings.Builder
	for _, part := range content.Parts {
		if part != nil && part.Text != "" {
			sb.WriteString(part.Text)
		}
	}
	return sb.String()
}
