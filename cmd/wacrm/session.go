package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/japb1998/wacrm/internal/ui"
)

type mapPrompter interface {
	PromptVariable(rows []mapping.Row) (string, error)
	PromptField(index string, options []ui.FieldOption) (string, error)
}

// mapSession drives a mapping.Editor from terminal prompts.
type mapSession struct {
	editor   *mapping.Editor
	options  []ui.FieldOption
	prompter mapPrompter
	out      io.Writer
	spin     bool
}

func (s *mapSession) run(ctx context.Context) error {
	if s.editor.NoVariables() {
		fmt.Fprintln(s.out, "No variables to map")
		return nil
	}

	if err := s.editor.Edit(); err != nil {
		return err
	}

	for {
		choice, err := s.prompter.PromptVariable(s.editor.Rows())
		if err != nil {
			s.editor.Cancel()
			return err
		}

		switch choice {
		case ui.ActionCancel:
			if err := s.editor.Cancel(); err != nil {
				return err
			}
			fmt.Fprintln(s.out, ui.YellowText("Changes discarded"))
			fmt.Fprint(s.out, ui.MappingTable(s.editor.Rows()))
			return nil
		case ui.ActionSave:
			if s.save(ctx) {
				return nil
			}
		default:
			field, err := s.prompter.PromptField(choice, s.options)
			if errors.Is(err, ui.ErrAborted) {
				continue
			}
			if err != nil {
				s.editor.Cancel()
				return err
			}
			if err := s.editor.Select(choice, field); err != nil {
				fmt.Fprintln(s.out, ui.RedText(err.Error()))
			}
		}
	}
}

// save reports whether the mapping was stored. A failed save keeps the edits.
func (s *mapSession) save(ctx context.Context) bool {
	if s.spin {
		ui.StartSpinner(&ui.SpinnerCfg{Message: "Saving mapping"})
	}
	err := s.editor.Save(ctx)
	if s.spin {
		ui.StopSpinner("")
	}

	if err != nil {
		fmt.Fprintln(s.out, ui.RedText(err.Error()))
		fmt.Fprintln(s.out, "Your changes are kept, save again or cancel.")
		return false
	}

	fmt.Fprintln(s.out, ui.GreenText("✔ Mapping saved"))
	fmt.Fprint(s.out, ui.MappingTable(s.editor.Rows()))
	return true
}
