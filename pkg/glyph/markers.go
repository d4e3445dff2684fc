package glyph

import (
	"strings"

	"tableflip.dev/mindlog/pkg/entry"
)

type Glyph struct {
	Symbol  string
	Meaning string
	// Flag marks glyphs that annotate an entry rather than rate it.
	Flag bool
}

type Marker int

const (
	Star Marker = iota
	EmptyStar
	Mood
	Stressed
	Motivated
	Pending
	Reply
)

func DefaultGlyphs() []Glyph {
	return []Glyph{
		Star:      {Symbol: "★", Meaning: "importance"},
		EmptyStar: {Symbol: "☆", Meaning: "unused importance"},
		Mood:      {Symbol: "☺", Meaning: "mood out of 10"},
		Stressed:  {Symbol: "⚡", Meaning: "stressed", Flag: true},
		Motivated: {Symbol: "↑", Meaning: "motivated", Flag: true},
		Pending:   {Symbol: "…", Meaning: "reflection pending", Flag: true},
		Reply:     {Symbol: "›", Meaning: "reflection", Flag: true},
	}
}

func (m Marker) Glyph() Glyph {
	return DefaultGlyphs()[m]
}

func (m Marker) String() string {
	return m.Glyph().Symbol
}

// Stars renders an importance rating as filled and empty stars.
func Stars(n int) string {
	if n < 0 {
		n = 0
	}
	if n > entry.MaxImportance {
		n = entry.MaxImportance
	}
	return strings.Repeat(Star.String(), n) + strings.Repeat(EmptyStar.String(), entry.MaxImportance-n)
}

// Flags renders the stressed and motivated markers that apply to m.
func Flags(m entry.Metadata) string {
	var flags []string
	if m.Stressed {
		flags = append(flags, Stressed.String())
	}
	if m.Motivated {
		flags = append(flags, Motivated.String())
	}
	return strings.Join(flags, " ")
}
