package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the legend of markers used when listing entries.",
		Example: `
mindlog key
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := key.Key{}
			return k.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
