package session

import (
	"sort"
	"strings"

	"tableflip.dev/mindlog/pkg/entry"
)

// Filter keeps entries whose text or reflection contains term, ignoring case.
// Sessions left without entries are dropped.
func Filter(sessions []Session, term string) []Session {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Session, 0, len(sessions))
	for _, s := range Dedupe(sessions) {
		kept := make([]entry.Entry, 0, len(s.Entries))
		for _, e := range s.Entries {
			if term == "" ||
				strings.Contains(strings.ToLower(e.User), term) ||
				strings.Contains(strings.ToLower(e.AI), term) {
				kept = append(kept, e)
			}
		}
		if len(kept) == 0 {
			continue
		}
		s.Entries = kept
		out = append(out, s)
	}
	return out
}

// Group is the entries of one topic.
type Group struct {
	Topic   string
	Entries []entry.Entry
}

// GroupByTopic buckets entries by topic in order of first appearance.
func GroupByTopic(entries []entry.Entry) []Group {
	groups := make([]Group, 0)
	index := make(map[string]int)
	for _, e := range entries {
		topic := e.TopicOrDefault()
		i, ok := index[topic]
		if !ok {
			i = len(groups)
			index[topic] = i
			groups = append(groups, Group{Topic: topic})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}
	return groups
}

// TopByImportance returns up to n entries ordered by importance, highest
// first, keeping insertion order among equals. n <= 0 selects every entry.
func TopByImportance(entries []entry.Entry, n int) []entry.Entry {
	out := append([]entry.Entry(nil), entries...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Importance > out[j].Importance
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}
