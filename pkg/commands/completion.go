package commands

import (
	"context"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/session"
	"tableflip.dev/mindlog/pkg/store"
)

func addCompletions(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "completion",
		Short: "Generates bash completion scripts",
		Long: `To load completion run

. <(mindlog completion)

To configure your bash shell to load completions for each session add to your bashrc

# ~/.bashrc or ~/.profile
. <(mindlog completion)
`,
		Run: func(cmd *cobra.Command, args []string) {
			_ = topLevel.GenBashCompletionV2(os.Stdout, true)
		},
	}

	topLevel.AddCommand(cmd)
}

// sessionCompletions offers today, yesterday and every stored session key.
func sessionCompletions() []string {
	out := []string{"today", "yesterday"}
	p, err := store.Load(nil)
	if err != nil {
		return out
	}
	for _, s := range session.Newest(p.LoadSessions(context.Background())) {
		out = append(out, s.ID)
	}
	return out
}

// entryCompletions offers entry ids with the start of their text as a hint.
func entryCompletions(toComplete string) []string {
	p, err := store.Load(nil)
	if err != nil {
		return nil
	}
	var out []string
	for _, s := range session.Newest(p.LoadSessions(context.Background())) {
		for _, e := range s.Entries {
			if !strings.HasPrefix(e.ID, toComplete) {
				continue
			}
			hint := []rune(strings.Join(strings.Fields(e.User), " "))
			if len(hint) > 40 {
				hint = hint[:40]
			}
			out = append(out, e.ID+"\t"+s.ID+" "+string(hint))
		}
	}
	return out
}
