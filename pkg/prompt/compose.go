// Package prompt asks for an entry and its metadata interactively.
package prompt

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"

	"tableflip.dev/mindlog/pkg/entry"
)

// Compose walks through the compose form: text, importance, mood, topic,
// feelings and reflection depth. defaults seeds every answer.
func Compose(in io.Reader, out io.Writer, defaults entry.Metadata) (string, entry.Metadata, error) {
	c := composer{in: io.NopCloser(in), out: nopCloser{out}}
	meta := defaults

	text, err := c.ask("What's on your mind", "", validateText)
	if err != nil {
		return "", meta, err
	}

	if meta.Importance, err = c.number("Importance (1-5)", meta.Importance, validateRange(entry.MinImportance, entry.MaxImportance)); err != nil {
		return "", meta, err
	}
	if meta.Mood, err = c.number("Mood (1-10, 0 to skip)", meta.Mood, validateRange(0, entry.MaxMood)); err != nil {
		return "", meta, err
	}

	topics := append([]string{entry.DefaultTopic}, entry.Topics...)
	topic, err := c.choose("Topic", topics, indexOf(topics, meta.TopicOrDefault()))
	if err != nil {
		return "", meta, err
	}
	meta.Topic = topics[topic]
	if meta.Topic == entry.DefaultTopic {
		meta.Topic = ""
	}

	if meta.Stressed, err = c.confirm("Feeling stressed", meta.Stressed); err != nil {
		return "", meta, err
	}
	if meta.Motivated, err = c.confirm("Feeling motivated", meta.Motivated); err != nil {
		return "", meta, err
	}

	levels := []string{entry.Gentle.String(), entry.Balanced.String(), entry.Deep.String()}
	level, err := c.choose("Reflection depth", levels, int(meta.InsightLevel)-1)
	if err != nil {
		return "", meta, err
	}
	meta.InsightLevel = entry.Insight(level + 1)

	return text, meta, meta.Validate()
}

type composer struct {
	in  io.ReadCloser
	out io.WriteCloser
}

var templates = &promptui.PromptTemplates{
	Prompt:  "{{ . }}: ",
	Valid:   "{{ . | green }}: ",
	Invalid: "{{ . | red }}: ",
	Success: "{{ . | bold }}: ",
}

func (c composer) ask(label, def string, validate promptui.ValidateFunc) (string, error) {
	p := promptui.Prompt{
		Label:     label,
		Default:   def,
		Templates: templates,
		Validate:  validate,
		Stdin:     c.in,
		Stdout:    c.out,
	}
	return p.Run()
}

func (c composer) number(label string, def int, validate promptui.ValidateFunc) (int, error) {
	answer, err := c.ask(label, strconv.Itoa(def), validate)
	if err != nil {
		return def, err
	}
	return strconv.Atoi(strings.TrimSpace(answer))
}

func (c composer) choose(label string, items []string, cursor int) (int, error) {
	if cursor < 0 {
		cursor = 0
	}
	s := promptui.Select{
		Label:     label,
		Items:     items,
		CursorPos: cursor,
		HideHelp:  true,
		Stdin:     c.in,
		Stdout:    c.out,
	}
	i, _, err := s.Run()
	return i, err
}

func (c composer) confirm(label string, def bool) (bool, error) {
	items := []string{"no", "yes"}
	cursor := 0
	if def {
		cursor = 1
	}
	i, err := c.choose(label, items, cursor)
	return i == 1, err
}

func validateText(input string) error {
	if strings.TrimSpace(input) == "" {
		return errors.New("write something first")
	}
	return nil
}

func validateRange(lo, hi int) promptui.ValidateFunc {
	return func(input string) error {
		n, err := strconv.Atoi(strings.TrimSpace(input))
		if err != nil {
			return errors.New("enter a number")
		}
		if n < lo || n > hi {
			return fmt.Errorf("enter a number from %d to %d", lo, hi)
		}
		return nil
	}
}

func indexOf(items []string, v string) int {
	for i, item := range items {
		if item == v {
			return i
		}
	}
	return 0
}

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }
