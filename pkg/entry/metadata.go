package entry

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Insight selects how deep an AI reflection is allowed to go.
type Insight int

const (
	Gentle   Insight = 1
	Balanced Insight = 2
	Deep     Insight = 3
)

const (
	MinImportance     = 1
	MaxImportance     = 5
	DefaultImportance = 3
	MaxMood           = 10
	// DefaultTopic is shown for entries written without a topic.
	DefaultTopic = "general"
)

// Topics are the suggested topic tags; free-form topics are accepted too.
var Topics = []string{"work", "life", "school", "relationships", "goals", "emotions"}

var (
	ErrImportanceRange = fmt.Errorf("importance must be between %d and %d", MinImportance, MaxImportance)
	ErrMoodRange       = fmt.Errorf("mood must be between 1 and %d", MaxMood)
	ErrInsightUnknown  = errors.New("insight must be one of gentle, balanced, deep")
)

func (i Insight) String() string {
	switch i {
	case Gentle:
		return "gentle"
	case Deep:
		return "deep"
	default:
		return "balanced"
	}
}

// ParseInsight accepts a level number or its name.
func ParseInsight(s string) (Insight, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if n < int(Gentle) || n > int(Deep) {
			return 0, ErrInsightUnknown
		}
		return Insight(n), nil
	}
	switch s {
	case "gentle":
		return Gentle, nil
	case "", "balanced":
		return Balanced, nil
	case "deep":
		return Deep, nil
	}
	return 0, ErrInsightUnknown
}

// Metadata is the context a writer attaches to an entry.
type Metadata struct {
	Importance   int     `json:"importance"`
	Mood         int     `json:"mood,omitempty"`
	Topic        string  `json:"topic,omitempty"`
	Stressed     bool    `json:"stressed,omitempty"`
	Motivated    bool    `json:"motivated,omitempty"`
	InsightLevel Insight `json:"insightLevel"`
}

// DefaultMetadata mirrors the compose form's initial state.
func DefaultMetadata() Metadata {
	return Metadata{Importance: DefaultImportance, InsightLevel: Balanced}
}

// Validate rejects ratings outside their ranges. Mood zero means unset.
func (m Metadata) Validate() error {
	if m.Importance < MinImportance || m.Importance > MaxImportance {
		return ErrImportanceRange
	}
	if m.Mood < 0 || m.Mood > MaxMood {
		return ErrMoodRange
	}
	if m.InsightLevel < Gentle || m.InsightLevel > Deep {
		return ErrInsightUnknown
	}
	return nil
}

// Normalize clamps ratings into range and canonicalizes the topic.
func (m Metadata) Normalize() Metadata {
	m.Importance = clamp(m.Importance, MinImportance, MaxImportance)
	m.Mood = clamp(m.Mood, 0, MaxMood)
	if m.InsightLevel < Gentle || m.InsightLevel > Deep {
		m.InsightLevel = Balanced
	}
	m.Topic = strings.ToLower(strings.TrimSpace(m.Topic))
	return m
}

// TopicOrDefault returns the topic tag used for grouping.
func (m Metadata) TopicOrDefault() string {
	if m.Topic == "" {
		return DefaultTopic
	}
	return m.Topic
}

func clamp(v, lo, hi int) int {
	switch {
	case v < lo:
		return lo
	case v > hi:
		return hi
	}
	return v
}
