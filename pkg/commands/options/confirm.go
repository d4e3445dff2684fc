package options

import (
	"fmt"
	"io"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/spf13/cobra"
)

// ConfirmOptions
type ConfirmOptions struct {
	Yes bool
}

func AddConfirmArgs(cmd *cobra.Command, o *ConfirmOptions) {
	cmd.Flags().BoolVarP(&o.Yes, "yes", "y", false,
		"Do not ask for confirmation.")
}

var confirmTemplates = &promptui.PromptTemplates{
	Prompt:  "{{ . }} ",
	Valid:   "{{ . | green }} ",
	Invalid: "{{ . | red }} ",
	Success: "{{ . | bold }} ",
}

// Confirm asks prompt on out and reads a yes/no answer from in. An empty
// answer, a failed read or anything but yes declines.
func (o *ConfirmOptions) Confirm(in io.Reader, out io.Writer, prompt string) bool {
	if o.Yes {
		return true
	}
	p := promptui.Prompt{
		Label:     prompt + " [y/N]",
		Templates: confirmTemplates,
		Validate: func(input string) error {
			if strings.TrimSpace(input) == "" {
				return nil
			}
			_, err := parseAnswer(input)
			return err
		},
		Stdin:  io.NopCloser(in),
		Stdout: nopWriteCloser{out},
	}
	answer, err := p.Run()
	if err != nil {
		return false
	}
	yes, err := parseAnswer(answer)
	return err == nil && yes
}

// parseAnswer reads y/yes/true as yes and n/no/false as no, ignoring case.
func parseAnswer(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "true", "t", "1":
		return true, nil
	case "n", "no", "false", "f", "0":
		return false, nil
	}
	return false, fmt.Errorf("answer y or n, not %q", s)
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
