package chat

import (
	"context"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/printers"
	"tableflip.dev/mindlog/pkg/tui/chatview"
)

type Chat struct {
	Service *app.Service
	EntryID string
	// Message sends a single turn instead of opening the interactive view.
	Message string
	Output  options.OutputOptions
	// Out defaults to color.Output. The interactive view always draws on the
	// terminal.
	Out io.Writer
}

func (n *Chat) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	e, err := n.Service.Entry(ctx, n.EntryID)
	if err != nil {
		return err
	}
	thread, err := n.Service.OpenChat(ctx, n.EntryID)
	if err != nil {
		return err
	}

	if n.Message == "" {
		if n.Output.JSON {
			return n.Output.WriteJSON(out, thread)
		}
		return chatview.Run(ctx, n.Service, e, thread)
	}

	reply, err := n.Service.SendChat(ctx, n.EntryID, n.Message)
	if err != nil {
		return err
	}
	if n.Output.JSON {
		return n.Output.WriteJSON(out, reply)
	}
	pp := printers.PrettyPrint{Out: out}
	pp.Message(reply)
	return nil
}
