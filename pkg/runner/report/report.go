package report

import (
	"context"
	"time"

	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/printers"
	"tableflip.dev/mindlog/pkg/timeutil"
)

type Report struct {
	Service *app.Service
	Last    string
	Now     time.Time
	Output  options.OutputOptions
}

func (n *Report) Do(ctx context.Context) error {
	days, label, err := timeutil.ParseWindow(n.Last)
	if err != nil {
		return err
	}
	until := n.Now
	if until.IsZero() {
		until = time.Now()
	}

	result, err := n.Service.Report(ctx, timeutil.Since(until, days), until)
	if err != nil {
		return err
	}
	if n.Output.JSON {
		return n.Output.PrintJSON(result)
	}
	pp := printers.PrettyPrint{}
	pp.Report(result, label)
	return nil
}
