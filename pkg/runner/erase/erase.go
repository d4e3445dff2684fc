package erase

import (
	"context"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
)

const prompt = "Clear all journal entries?"

type Erase struct {
	Service *app.Service
	Confirm options.ConfirmOptions
	In      io.Reader
	Out     io.Writer
}

func (n *Erase) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}
	in := n.In
	if in == nil {
		in = os.Stdin
	}
	if !n.Confirm.Confirm(in, out, prompt) {
		_, _ = color.New(color.Faint).Fprintln(out, "nothing cleared")
		return nil
	}
	if err := n.Service.Clear(ctx); err != nil {
		return err
	}
	_, _ = color.New(color.FgGreen).Fprintln(out, "journal cleared")
	return nil
}
