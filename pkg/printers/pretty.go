package printers

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/chat"
	"tableflip.dev/mindlog/pkg/entry"
	"tableflip.dev/mindlog/pkg/glyph"
	"tableflip.dev/mindlog/pkg/session"
)

// DefaultWidth is the column reflections and summaries are wrapped to.
const DefaultWidth = 80

type PrettyPrint struct {
	ShowID bool
	// Width wraps long text; zero uses DefaultWidth.
	Width int
	// Out defaults to color.Output.
	Out io.Writer
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out != nil {
		return pp.Out
	}
	return color.Output
}

func (pp *PrettyPrint) width() int {
	if pp.Width > 0 {
		return pp.Width
	}
	return DefaultWidth
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " entry")
	default:
		_, _ = c.Fprintln(pp.out(), " entries")
	}
}

// Block wraps text to the print width and indents it.
func (pp *PrettyPrint) Block(text string, pad uint) string {
	wrapped := wordwrap.String(strings.TrimSpace(text), pp.width()-int(pad))
	return indent.String(wrapped, pad)
}

// Sessions prints an overview table of sessions.
func (pp *PrettyPrint) Sessions(sessions []session.Session, summaries map[string]string) {
	if len(sessions) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " no sessions yet\n\n")
		return
	}
	bold := color.New(color.Bold)
	faint := color.New(color.Faint)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = uint(pp.width() / 2)
	tbl.AddRow(bold.Sprint("Session"), bold.Sprint("Date"), bold.Sprint("Entries"), bold.Sprint("Summary"))
	for _, s := range sessions {
		summary := faint.Sprint("-")
		if text, ok := summaries[s.ID]; ok {
			summary = text
		}
		tbl.AddRow(s.ID, s.Date, len(s.Entries), summary)
	}
	tbl.RightAlign(2)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Session prints a session's entries grouped by topic, followed by its
// summary when one is cached.
func (pp *PrettyPrint) Session(s session.Session, summary string) {
	pp.TitleWithCount(s.Date, len(s.Entries))
	for _, g := range session.GroupByTopic(s.Entries) {
		_, _ = color.New(color.FgCyan, color.Bold).Fprintf(pp.out(), "  %s\n", g.Topic)
		for _, e := range g.Entries {
			pp.Entry(e)
		}
	}
	if summary != "" {
		pp.Summary(summary)
	}
	pp.NewLine()
}

// Entry prints one entry and its reflection.
func (pp *PrettyPrint) Entry(e entry.Entry) {
	y := color.New(color.FgHiYellow)
	f := color.New(color.Faint)

	header := []string{y.Sprint(glyph.Stars(e.Importance)), f.Sprint(e.When())}
	if e.Mood > 0 {
		header = append(header, fmt.Sprintf("%s %d/%d", glyph.Mood, e.Mood, entry.MaxMood))
	}
	if flags := glyph.Flags(e.Metadata); flags != "" {
		header = append(header, flags)
	}
	if pp.ShowID {
		header = append(header, f.Sprint(e.ID))
	}
	_, _ = fmt.Fprintf(pp.out(), "    %s\n", strings.Join(header, "  "))
	_, _ = fmt.Fprintln(pp.out(), pp.Block(e.User, 4))

	if e.Pending() {
		_, _ = color.New(color.Faint, color.Italic).Fprintf(pp.out(), "    %s reflecting...\n", glyph.Pending)
		return
	}
	reply := color.New(color.FgGreen)
	_, _ = reply.Fprintln(pp.out(), pp.Block(glyph.Reply.String()+" "+e.AI, 6))
}

// Summary prints a session summary.
func (pp *PrettyPrint) Summary(text string) {
	_, _ = color.New(color.Bold).Fprintln(pp.out(), "  Summary")
	_, _ = color.New(color.FgMagenta).Fprintln(pp.out(), pp.Block(text, 4))
}

// Thread prints the visible turns of a chat thread.
func (pp *PrettyPrint) Thread(thread []chat.Message) {
	for _, m := range chat.Visible(thread) {
		pp.Message(m)
	}
}

// Message prints a single chat turn.
func (pp *PrettyPrint) Message(m chat.Message) {
	switch m.Role {
	case chat.RoleUser:
		_, _ = color.New(color.Bold).Fprintln(pp.out(), "you")
		_, _ = fmt.Fprintln(pp.out(), pp.Block(m.Content, 2))
	default:
		_, _ = color.New(color.Bold, color.FgGreen).Fprintln(pp.out(), "mindlog")
		_, _ = color.New(color.FgGreen).Fprintln(pp.out(), pp.Block(m.Content, 2))
	}
}

// Report prints aggregated session statistics.
func (pp *PrettyPrint) Report(result app.ReportResult, label string) {
	_, _ = color.New(color.Bold).Fprintf(pp.out(), "Report · last %s (%s → %s)\n", label, result.Since, result.Until)

	if result.Total == 0 {
		_, _ = fmt.Fprintln(pp.out(), "  No entries found in this window.")
		pp.NewLine()
		return
	}

	bold := color.New(color.Bold)
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Date"), bold.Sprint("Entries"), bold.Sprint("Importance"), bold.Sprint("Mood"),
		bold.Sprint(glyph.Stressed.String()), bold.Sprint(glyph.Motivated.String()), bold.Sprint("Topics"))
	for _, s := range result.Sections {
		mood := "-"
		if s.AvgMood > 0 {
			mood = fmt.Sprintf("%.1f", s.AvgMood)
		}
		date := s.Date
		if s.Summarized {
			date += " " + glyph.Reply.String()
		}
		tbl.AddRow(date, s.Entries, fmt.Sprintf("%.1f", s.AvgImportance), mood, s.Stressed, s.Motivated, topics(s.Topics))
	}
	tbl.RightAlign(1)
	tbl.RightAlign(2)
	tbl.RightAlign(3)
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "%d entries in %d sessions\n\n", result.Total, len(result.Sections))
}

// topics renders topic counts, most frequent first.
func topics(counts map[string]int) string {
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return names[i] < names[j]
	})
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s×%d", name, counts[name]))
	}
	return strings.Join(parts, " ")
}
