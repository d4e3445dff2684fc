package commands

import (
	"github.com/muesli/reflow/wordwrap"
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/ai"
	"tableflip.dev/mindlog/pkg/app"
	"tableflip.dev/mindlog/pkg/store"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "mindlog",
		Short: wordwrap.String("Reflective journaling on the command line.", 80),
		Long: wordwrap.String("Write journal entries tagged with importance, mood and topic, "+
			"get a short reflection on each one, browse past days, summarize them, "+
			"and keep talking about any entry.", 80),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addWrite(topLevel)
	addLibrary(topLevel)
	addSummarize(topLevel)
	addChat(topLevel)
	addReport(topLevel)
	addClear(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// newService opens the store and, when needAI is set, the completion client.
func newService(needAI bool) (*app.Service, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg)
	if err != nil {
		return nil, err
	}
	svc := app.New(p, nil, cfg.SummaryTop())
	if !needAI {
		return svc, nil
	}

	aiCfg, err := ai.LoadConfig()
	if err != nil {
		return nil, err
	}
	client, err := ai.New(aiCfg)
	if err != nil {
		return nil, err
	}
	svc.AI = client
	return svc, nil
}
