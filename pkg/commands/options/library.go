package options

import (
	"github.com/spf13/cobra"
)

// LibraryOptions
type LibraryOptions struct {
	Search  string
	Session string
	Follow  bool
	Brief   bool
}

func AddLibraryArgs(cmd *cobra.Command, o *LibraryOptions) {
	cmd.Flags().StringVarP(&o.Search, "search", "s", "",
		"Only show entries whose text or reflection contains this.")
	cmd.Flags().StringVar(&o.Session, "on", "",
		`Only show one session, example: --on=2024-03-09, --on=today or --on=yesterday.`)
	cmd.Flags().BoolVarP(&o.Follow, "follow", "f", false,
		"Keep running and re-render when the journal changes.")
	cmd.Flags().BoolVarP(&o.Brief, "brief", "b", false,
		"Only list sessions, without their entries.")
}
