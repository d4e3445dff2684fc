package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/runner/info"
	"tableflip.dev/mindlog/pkg/store"
)

func addInfo(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Details about the journal and where it is stored.",
		Example: `
mindlog info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			cfg, err := store.LoadConfig()
			if err != nil {
				return err
			}
			p, err := store.Load(cfg)
			if err != nil {
				return err
			}
			aiCfg, err := ai.LoadConfig()
			if err != nil {
				return err
			}
			s := info.Info{
				Config:      cfg,
				AI:          aiCfg,
				Persistence: p,
			}
			return s.Do(cmd.Context())
		},
	}

	topLevel.AddCommand(cmd)
}
