package app

import (
	"context"
	"sort"
	"time"

	"tableflip.dev/mindlog/pkg/session"
)

// ReportSection aggregates the metadata of one session.
type ReportSection struct {
	Session       string  `json:"session"`
	Date          string  `json:"date"`
	Entries       int     `json:"entries"`
	AvgImportance float64 `json:"avgImportance"`
	// AvgMood averages only entries with a mood rating; zero when none.
	AvgMood    float64        `json:"avgMood,omitempty"`
	Stressed   int            `json:"stressed"`
	Motivated  int            `json:"motivated"`
	Topics     map[string]int `json:"topics"`
	Summarized bool           `json:"summarized"`
}

// ReportResult collects sessions between two days, oldest first.
type ReportResult struct {
	Since    string          `json:"since"`
	Until    string          `json:"until"`
	Sections []ReportSection `json:"sections"`
	Total    int             `json:"total"`
}

// Report aggregates the sessions whose day falls between since and until,
// inclusive.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	all, err := s.Snapshot(ctx)
	if err != nil {
		return ReportResult{}, err
	}
	summaries := s.Persistence.LoadSummaries(ctx)

	from, to := session.DateKey(since), session.DateKey(until)
	result := ReportResult{Since: from, Until: to}
	for _, sess := range session.Dedupe(all) {
		if sess.ID < from || sess.ID > to || len(sess.Entries) == 0 {
			continue
		}
		section := ReportSection{
			Session: sess.ID,
			Date:    sess.Date,
			Entries: len(sess.Entries),
			Topics:  make(map[string]int),
		}
		importance, mood, moods := 0, 0, 0
		for _, e := range sess.Entries {
			importance += e.Importance
			if e.Mood > 0 {
				mood += e.Mood
				moods++
			}
			if e.Stressed {
				section.Stressed++
			}
			if e.Motivated {
				section.Motivated++
			}
			section.Topics[e.TopicOrDefault()]++
		}
		section.AvgImportance = float64(importance) / float64(len(sess.Entries))
		if moods > 0 {
			section.AvgMood = float64(mood) / float64(moods)
		}
		_, section.Summarized = summaries[sess.ID]

		result.Sections = append(result.Sections, section)
		result.Total += section.Entries
	}
	sort.Slice(result.Sections, func(i, j int) bool {
		return result.Sections[i].Session < result.Sections[j].Session
	})
	return result, nil
}
