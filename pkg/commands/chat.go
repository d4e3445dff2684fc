package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/runner/chat"
)

func addChat(topLevel *cobra.Command) {
	var message string
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "chat <entry-id>",
		Short: "Keep talking about an entry.",
		Long: `Chat continues the conversation about a single entry. Without --message an
interactive view opens; find entry ids with "mindlog library --show-id".`,
		Example: `
mindlog chat 3f2c9a7e-0a4b-4f7e-9c51-2d1f0b6a8e11
mindlog chat 3f2c9a7e-0a4b-4f7e-9c51-2d1f0b6a8e11 --message "Why does this keep happening?"
`,
		Args: cobra.ExactArgs(1),
		ValidArgsFunction: func(_ *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) != 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return entryCompletions(toComplete), cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(true)
			if err != nil {
				return oo.HandleError(err)
			}
			c := chat.Chat{
				Service: svc,
				EntryID: args[0],
				Message: message,
				Output:  *oo,
			}
			return oo.HandleError(c.Do(cmd.Context()))
		},
	}

	cmd.Flags().StringVarP(&message, "message", "m", "", "Send one message and print the answer instead of opening the interactive view.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
