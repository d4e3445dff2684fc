// Package key provides CLI helpers to display the entry marker legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/glyph"
)

// Key prints the legend of markers used when listing entries.
type Key struct {
	Out io.Writer
}

// Do renders the rating markers, the flag markers and the insight levels.
func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, "")

	glyfs := glyph.DefaultGlyphs()
	k.Key(ctx, out, glyfs, false)
	_, _ = fmt.Fprintln(out, "")
	k.Key(ctx, out, glyfs, true)
	_, _ = fmt.Fprintln(out, "")

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("   Insight"), bold.Sprint("Level"))
	for _, level := range []entry.Insight{entry.Gentle, entry.Balanced, entry.Deep} {
		tbl.AddRow(level.String(), int(level))
	}
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	_, _ = fmt.Fprintln(out, "")
	return nil
}

// Key renders a glyph table; when flags is true, flag markers are shown.
func (k *Key) Key(_ context.Context, out io.Writer, glyfs []glyph.Glyph, flags bool) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	if flags {
		tbl.AddRow(bold.Sprint("     Flags"), bold.Sprint("Meaning"))
	} else {
		tbl.AddRow(bold.Sprint("   Ratings"), bold.Sprint("Meaning"))
	}
	for _, v := range glyfs {
		if flags == v.Flag {
			tbl.AddRow(v.Symbol, v.Meaning)
		}
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(out, tbl)
}
