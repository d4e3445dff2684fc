package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/runner/summarize"
)

func addSummarize(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "summarize [date]",
		Short: "Summarize a day's most important entries.",
		Long: `Summarize asks for a short synthesis of the most important entries of a
session and caches it. The number of entries used is set by summary.top in
the config file. The date defaults to today.`,
		Example: `
mindlog summarize
mindlog summarize yesterday
mindlog summarize 2024-03-09
`,
		Args: cobra.MaximumNArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return sessionCompletions(), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(true)
			if err != nil {
				return oo.HandleError(err)
			}
			raw := "today"
			if len(args) == 1 {
				raw = args[0]
			}
			key, err := svc.ParseSession(raw)
			if err != nil {
				return oo.HandleError(err)
			}
			s := summarize.Summarize{
				Service: svc,
				Session: key,
				Output:  *oo,
			}
			return oo.HandleError(s.Do(cmd.Context()))
		},
	}

	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
