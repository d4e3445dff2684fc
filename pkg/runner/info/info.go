package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

type Info struct {
	Config      store.Config
	AI          ai.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	out := n.Out
	if out == nil {
		out = color.Output
	}

	if override := os.Getenv("MINDLOG_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(out, "MINDLOG_CONFIG_PATH found on env, using", override)
	} else {
		_, _ = fmt.Fprintln(out, "MINDLOG_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	sessions := n.Persistence.LoadSessions(ctx)
	summaries := n.Persistence.LoadSummaries(ctx)
	threads := n.Persistence.Threads(ctx)

	key := "not set"
	if n.AI.APIKey != "" {
		key = "set"
	}
	baseURL := n.AI.BaseURL
	if baseURL == "" {
		baseURL = "default"
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("path"), n.Config.BasePath())
	tbl.AddRow(bold.Sprint("summary.top"), n.Config.SummaryTop())
	tbl.AddRow(bold.Sprint("model"), n.AI.Model)
	tbl.AddRow(bold.Sprint("base url"), baseURL)
	tbl.AddRow(bold.Sprint("api key"), key)
	tbl.AddRow(bold.Sprint("sessions"), len(sessions))
	tbl.AddRow(bold.Sprint("entries"), session.Count(sessions))
	tbl.AddRow(bold.Sprint("summaries"), len(summaries))
	tbl.AddRow(bold.Sprint("chats"), len(threads))
	tbl.RightAlign(0)
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}
