package commands

import (
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	wo := &options.WindowOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show importance, mood and topics per day over a recent window.",
		Long: `Report aggregates the sessions within the window ending today: entry counts,
average importance and mood, how often stress and motivation were flagged, and
which topics came up.

Examples:
  mindlog report
  mindlog report --last 3d
  mindlog report --last 2w`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			svc, err := newService(false)
			if err != nil {
				return oo.HandleError(err)
			}
			r := report.Report{
				Service: svc,
				Last:    wo.Last,
				Output:  *oo,
			}
			return oo.HandleError(r.Do(cmd.Context()))
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
