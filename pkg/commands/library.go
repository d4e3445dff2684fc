package commands

import (
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/runner/library"
)

func addLibrary(topLevel *cobra.Command) {
	lo := &options.LibraryOptions{}
	io := &options.IDOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "library",
		Aliases: []string{"ls", "lib"},
		Short:   "Browse past sessions with their reflections and summaries.",
		Example: `
mindlog library
mindlog library --search meeting
mindlog library --on yesterday --show-id
mindlog library --brief --follow
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			key := ""
			if lo.Session != "" {
				key, err = svc.ParseSession(lo.Session)
				if err != nil {
					return oo.HandleError(err)
				}
			}

			ctx := cmd.Context()
			if lo.Follow {
				var stop func()
				ctx, stop = signal.NotifyContext(ctx, os.Interrupt)
				defer stop()
			}

			l := library.Library{
				Service: svc,
				Search:  lo.Search,
				Session: key,
				Follow:  lo.Follow,
				Brief:   lo.Brief,
				ShowID:  io.ShowID,
				Output:  *oo,
			}
			return oo.HandleError(l.Do(ctx))
		},
	}

	options.AddLibraryArgs(cmd, lo)
	options.AddShowIDArgs(cmd, io)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("on", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return sessionCompletions(), cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}
