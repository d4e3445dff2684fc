package options

import (
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/entry"
)

// EntryOptions
type EntryOptions struct {
	Importance int
	Mood       int
	Topic      string
	Stressed   bool
	Motivated  bool
	Insight    string
}

func AddEntryArgs(cmd *cobra.Command, o *EntryOptions) {
	cmd.Flags().IntVarP(&o.Importance, "importance", "i", entry.DefaultImportance,
		"How important this is, from 1 to 5.")
	cmd.Flags().IntVarP(&o.Mood, "mood", "m", 0,
		"Mood from 1 to 10; 0 leaves it unset.")
	cmd.Flags().StringVarP(&o.Topic, "topic", "t", "",
		`Topic tag, for example: `+strings.Join(entry.Topics, ", ")+`.`)
	cmd.Flags().BoolVar(&o.Stressed, "stressed", false,
		"Feeling stressed.")
	cmd.Flags().BoolVar(&o.Motivated, "motivated", false,
		"Feeling motivated.")
	cmd.Flags().StringVar(&o.Insight, "insight", entry.Balanced.String(),
		"Reflection depth: gentle, balanced or deep.")
}

// Metadata validates the flags and returns the entry metadata they describe.
func (o *EntryOptions) Metadata() (entry.Metadata, error) {
	level, err := entry.ParseInsight(o.Insight)
	if err != nil {
		return entry.Metadata{}, err
	}
	meta := entry.Metadata{
		Importance:   o.Importance,
		Mood:         o.Mood,
		Topic:        o.Topic,
		Stressed:     o.Stressed,
		Motivated:    o.Motivated,
		InsightLevel: level,
	}
	if err := meta.Validate(); err != nil {
		return entry.Metadata{}, err
	}
	return meta, nil
}
