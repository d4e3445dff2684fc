package library

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/printers"
	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

type Library struct {
	Service *app.Service
	Search  string
	// Session limits the view to one session key.
	Session string
	Follow  bool
	Brief   bool
	ShowID  bool
	Output  options.OutputOptions
	// Out defaults to color.Output.
	Out io.Writer
}

func (n *Library) out() io.Writer {
	if n.Out != nil {
		return n.Out
	}
	return color.Output
}

type sessionView struct {
	session.Session
	Summary string `json:"summary,omitempty"`
}

func (n *Library) Do(ctx context.Context) error {
	if err := n.render(ctx); err != nil {
		return err
	}
	if !n.Follow {
		return nil
	}

	events, err := n.Service.Watch(ctx)
	if err != nil {
		return err
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if ev.Type == store.EventThreadChanged {
				continue
			}
			if !n.Output.JSON {
				_, _ = color.New(color.Faint).Fprintln(n.out(), "--- updated ---")
			}
			if err := n.render(ctx); err != nil {
				return err
			}
		}
	}
}

func (n *Library) sessions(ctx context.Context) ([]session.Session, error) {
	sessions, err := n.Service.Search(ctx, n.Search)
	if err != nil {
		return nil, err
	}
	if n.Session == "" {
		return sessions, nil
	}
	if s, ok := session.Find(sessions, n.Session); ok {
		return []session.Session{s}, nil
	}
	return nil, fmt.Errorf("%w: %s", app.ErrSessionNotFound, n.Session)
}

func (n *Library) render(ctx context.Context) error {
	sessions, err := n.sessions(ctx)
	if err != nil {
		return err
	}
	summaries, err := n.Service.Summaries(ctx)
	if err != nil {
		return err
	}

	if n.Output.JSON {
		views := make([]sessionView, 0, len(sessions))
		for _, s := range sessions {
			views = append(views, sessionView{Session: s, Summary: summaries[s.ID]})
		}
		return n.Output.WriteJSON(n.out(), views)
	}

	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.out()}
	if n.Brief || len(sessions) == 0 {
		pp.Sessions(sessions, summaries)
		return nil
	}
	for _, s := range sessions {
		pp.Session(s, summaries[s.ID])
	}
	return nil
}
