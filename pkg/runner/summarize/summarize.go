package summarize

import (
	"context"
	"errors"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/printers"
)

type Summarize struct {
	Service *app.Service
	Session string
	Output  options.OutputOptions
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Summarize) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	text, err := n.Service.GenerateSummary(ctx, n.Session)
	if errors.Is(err, app.ErrNothingToSummarize) && !n.Output.JSON {
		_, _ = color.New(color.Faint, color.Italic).Fprintln(out, "nothing to summarize")
		return nil
	}
	if err != nil {
		return err
	}

	if n.Output.JSON {
		return n.Output.WriteJSON(out, map[string]string{
			"session": n.Session,
			"summary": text,
		})
	}

	s, err := n.Service.Session(ctx, n.Session)
	if err != nil {
		return err
	}
	pp := printers.PrettyPrint{Out: out}
	pp.TitleWithCount(s.Date, len(s.Entries))
	pp.Summary(text)
	pp.NewLine()
	return nil
}
