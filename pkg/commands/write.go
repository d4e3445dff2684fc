package commands

import (
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"tableflip.dev/mindlog/pkg/commands/options"
	"tableflip.dev/mindlog/pkg/prompt"
	"tableflip.dev/mindlog/pkg/runner/write"
)

func addWrite(topLevel *cobra.Command) {
	eo := &options.EntryOptions{}
	oo := &options.OutputOptions{}
	i := &options.InteractiveOptions{}

	cmd := &cobra.Command{
		Use:     "write [text]",
		Aliases: []string{"w"},
		Short:   "Write an entry for today and get a reflection on it.",
		Example: `
mindlog write Had a tough meeting today --importance 4 --stressed
mindlog write --topic work --insight deep "Finally shipped the release"
echo "long day" | mindlog write --mood 3
mindlog write --interactive
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			meta, err := eo.Metadata()
			if err != nil {
				return oo.HandleError(err)
			}

			text := strings.Join(args, " ")
			if len(args) == 0 && stdinIsTerminal(cmd) {
				i.Interactive = true
			}
			if i.Interactive {
				text, meta, err = prompt.Compose(cmd.InOrStdin(), cmd.OutOrStdout(), meta)
				if err != nil {
					return oo.HandleError(err)
				}
			} else if len(args) == 0 {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return oo.HandleError(err)
				}
				// The newline ending the last piped line is not part of the entry.
				text = strings.TrimSuffix(string(b), "\n")
			}

			w := write.Write{
				Text:     text,
				Metadata: meta,
				Output:   *oo,
				Out:      cmd.OutOrStdout(),
			}
			if strings.TrimSpace(text) != "" {
				if w.Service, err = newService(true); err != nil {
					return oo.HandleError(err)
				}
			}
			return oo.HandleError(w.Do(cmd.Context()))
		},
	}

	options.AddEntryArgs(cmd, eo)
	options.InteractiveArgs(cmd, i)
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

// stdinIsTerminal reports whether the command reads from an interactive
// terminal rather than a pipe.
func stdinIsTerminal(cmd *cobra.Command) bool {
	f, ok := cmd.InOrStdin().(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
