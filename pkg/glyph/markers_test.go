package glyph

import (
	"testing"

	"tableflip.dev/mindlog/pkg/entry"
)

func TestStars(t *testing.T) {
	tests := map[int]string{
		-1: "☆☆☆☆☆",
		0:  "☆☆☆☆☆",
		3:  "★★★☆☆",
		5:  "★★★★★",
		9:  "★★★★★",
	}
	for in, want := range tests {
		if got := Stars(in); got != want {
			t.Errorf("Stars(%d) = %q, want %q", in, got, want)
		}
	}
}

func TestFlags(t *testing.T) {
	if got := Flags(entry.Metadata{}); got != "" {
		t.Errorf("expected no flags, got %q", got)
	}
	if got := Flags(entry.Metadata{Stressed: true, Motivated: true}); got != "⚡ ↑" {
		t.Errorf("unexpected flags %q", got)
	}
}

func TestDefaultGlyphsIndexedByMarker(t *testing.T) {
	g := DefaultGlyphs()
	if len(g) != int(Reply)+1 {
		t.Fatalf("expected a glyph per marker, got %d", len(g))
	}
	if Pending.Glyph().Meaning != "reflection pending" {
		t.Fatalf("unexpected pending glyph %+v", Pending.Glyph())
	}
}
