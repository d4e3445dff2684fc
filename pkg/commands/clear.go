package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/runner/erase"
)

func addClear(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every entry, summary and chat.",
		Example: `
mindlog clear
mindlog clear --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(false)
			if err != nil {
				return err
			}
			e := erase.Erase{
				Service: svc,
				Confirm: *co,
				In:      cmd.InOrStdin(),
				Out:     cmd.OutOrStdout(),
			}
			return e.Do(cmd.Context())
		},
	}

	options.AddConfirmArgs(cmd, co)
	topLevel.AddCommand(cmd)
}
