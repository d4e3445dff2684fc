package main

import (
	"context"
	"fmt"
	"time"

	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

type sample struct {
	daysAgo int
	hour    int
	text    string
	reply   string
	meta    entry.Metadata
}

var samples = []sample{
	{2, 9, "Slept badly and the commute was awful.", "Rough starts make everything after feel heavier. What would make tomorrow morning easier?",
		entry.Metadata{Importance: 2, Mood: 4, Topic: "life", Stressed: true, InsightLevel: entry.Gentle}},
	{2, 18, "Presented the roadmap and it landed well.", "You prepared for this and it showed. Notice what worked so you can repeat it.",
		entry.Metadata{Importance: 4, Mood: 8, Topic: "work", Motivated: true, InsightLevel: entry.Balanced}},
	{1, 12, "Argued with my sister about the holidays.", "Family plans carry a lot of history. It may help to name what each of you is protecting.",
		entry.Metadata{Importance: 5, Mood: 3, Topic: "relationships", Stressed: true, InsightLevel: entry.Deep}},
	{0, 8, "Went for a run before work.", "Starting with something for yourself sets a steady tone for the day.",
		entry.Metadata{Importance: 3, Mood: 7, Topic: "goals", Motivated: true, InsightLevel: entry.Balanced}},
}

func main() {
	p, err := store.Load(nil)
	if err != nil {
		panic(err)
	}
	ctx := context.Background()

	sessions := p.LoadSessions(ctx)
	now := time.Now()
	for _, s := range samples {
		day := now.AddDate(0, 0, -s.daysAgo)
		at := time.Date(day.Year(), day.Month(), day.Day(), s.hour, 0, 0, 0, time.Local)
		e := entry.New(s.text, s.meta, at)
		if err := e.AttachReply(s.reply); err != nil {
			panic(err)
		}
		sessions = session.AppendEntry(sessions, session.DateKey(at), *e)
	}
	if err := p.SaveSessions(ctx, sessions); err != nil {
		panic(err)
	}
	fmt.Printf("added %d sample entries, total %d\n", len(samples), session.Count(sessions))
}
