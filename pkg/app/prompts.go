package app

import (
	"fmt"
	"strings"

	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
)

const (
	reflectionMaxTokens   = 200
	reflectionTemperature = 0.7

	summarySystemPrompt = "You are a helpful assistant who reviews a person's daily journal entries. " +
		"Summarize key themes, emotional tone, and areas for growth."
)

var tonePrompts = map[entry.Insight]string{
	entry.Gentle: "You are a gentle journaling companion. Respond warmly, acknowledge what the writer feels, " +
		"and offer one soft reflection.",
	entry.Balanced: "You are a thoughtful journaling assistant. Reflect back the key feelings in the entry " +
		"and offer one practical perspective.",
	entry.Deep: "You are an insightful journaling coach. Look beneath the surface for patterns and beliefs, " +
		"name them plainly, and close with one probing question.",
}

// ReflectionPrompt builds the system instruction for a new entry.
func ReflectionPrompt(meta entry.Metadata) string {
	var b strings.Builder
	tone, ok := tonePrompts[meta.InsightLevel]
	if !ok {
		tone = tonePrompts[entry.Balanced]
	}
	b.WriteString(tone)

	fmt.Fprintf(&b, " The writer rated this entry %d of %d for importance", meta.Importance, entry.MaxImportance)
	if meta.Importance >= 4 {
		b.WriteString(", so give it careful attention.")
	} else {
		b.WriteString(".")
	}
	if meta.Mood > 0 {
		fmt.Fprintf(&b, " Their mood is %d out of %d.", meta.Mood, entry.MaxMood)
	}
	if meta.Stressed {
		b.WriteString(" They say they are feeling stressed.")
	}
	if meta.Motivated {
		b.WriteString(" They say they are feeling motivated.")
	}
	if meta.Topic != "" {
		fmt.Fprintf(&b, " The entry is about %s.", meta.Topic)
	}
	b.WriteString(" Keep the reply to two or three concise sentences.")
	return b.String()
}

// SummaryInput renders the selected entries of a session for synthesis.
func SummaryInput(s session.Session, picked []entry.Entry) string {
	blocks := make([]string, 0, len(picked))
	for _, e := range picked {
		blocks = append(blocks, fmt.Sprintf("[importance %d/%d, topic %s]\nUser: %s\nAI: %s",
			e.Importance, entry.MaxImportance, e.TopicOrDefault(), e.User, e.AI))
	}
	date := s.Date
	if date == "" {
		date = session.DisplayDate(s.ID)
	}
	return fmt.Sprintf("Journal entries for %s:\n\n%s", date, strings.Join(blocks, "\n\n"))
}
