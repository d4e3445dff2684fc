package write

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/printers"
)

type Write struct {
	// Service may be nil when Text is blank.
	Service  *app.Service
	Text     string
	Metadata entry.Metadata
	Output   options.OutputOptions
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Write) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	faint := color.New(color.Faint, color.Italic)

	if strings.TrimSpace(n.Text) == "" {
		if !n.Output.JSON {
			_, _ = faint.Fprintln(out, "nothing to write")
		}
		return nil
	}

	if !n.Output.JSON {
		_, _ = faint.Fprintln(out, "reflecting...")
	}

	e, err := n.Service.Submit(ctx, n.Text, n.Metadata)
	if e == nil {
		return err
	}

	if n.Output.JSON {
		if err != nil {
			return err
		}
		return n.Output.WriteJSON(out, e)
	}

	pp := printers.PrettyPrint{ShowID: true, Out: out}
	pp.Entry(*e)
	if err != nil {
		return fmt.Errorf("entry saved without a reflection: %w", err)
	}
	return nil
}
