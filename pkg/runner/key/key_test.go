package key

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestKeyListsMarkers(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = noColor }()

	var out bytes.Buffer
	k := Key{Out: &out}
	if err := k.Do(context.Background()); err != nil {
		t.Fatalf("Do: %v", err)
	}
	got := out.String()
	for _, want := range []string{"Ratings", "Flags", "★", "importance", "stressed", "reflection pending", "gentle", "deep"} {
		if !strings.Contains(got, want) {
			t.Errorf("legend missing %q:\n%s", want, got)
		}
	}
	if strings.Index(got, "importance") > strings.Index(got, "Flags") {
		t.Errorf("ratings should come before flags:\n%s", got)
	}
}
