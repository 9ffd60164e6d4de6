package ui

import (
	"errors"
	"fmt"

	"github.com/japb1998/wacrm/internal/dto"
	"github.com/japb1998/wacrm/internal/mapping"
	"github.com/manifoldco/promptui"
)

// ErrAborted is returned when the user leaves a prompt with ctrl+c or ctrl+d.
var ErrAborted = errors.New("aborted")

const UnsetLabel = "(unset)"

// FieldOption is one choice offered for a variable. An empty Value unsets it.
type FieldOption struct {
	Value string
	Label string
}

// FieldOptions lists "unset", the standard fields, then every custom key.
func FieldOptions(catalog dto.FieldCatalog) []FieldOption {
	opts := make([]FieldOption, 0, 1+len(catalog.Standard)+len(catalog.Custom))
	opts = append(opts, FieldOption{Label: UnsetLabel})
	for _, f := range catalog.Standard {
		ref := mapping.StandardField(f)
		opts = append(opts, FieldOption{Value: ref.String(), Label: ref.Label()})
	}
	for _, k := range catalog.Custom {
		ref := mapping.CustomField(k)
		opts = append(opts, FieldOption{Value: ref.String(), Label: ref.Label()})
	}
	return opts
}

// Editor menu entries that are not variables.
const (
	ActionSave   = "save"
	ActionCancel = "cancel"
)

type menuItem struct {
	Key   string
	Label string
}

func runErr(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
		return ErrAborted
	}
	return err
}

// Prompter asks the questions of the mapping editor on the terminal.
type Prompter struct{}

// PromptVariable shows the variables with their current binding plus save and
// cancel. It returns the chosen variable index or one of the actions.
func (Prompter) PromptVariable(rows []mapping.Row) (string, error) {
	items := make([]menuItem, 0, len(rows)+2)
	for _, r := range rows {
		items = append(items, menuItem{Key: r.Index, Label: fmt.Sprintf("{{%s}} -> %s", r.Index, r.Label)})
	}
	items = append(items, menuItem{Key: ActionSave, Label: "Save"}, menuItem{Key: ActionCancel, Label: "Cancel"})

	prompt := promptui.Select{
		Label: "Select a variable",
		Items: items,
		Size:  len(items),
		Templates: &promptui.SelectTemplates{
			Active:   `{{ .Label | underline }}`,
			Inactive: `{{ .Label }}`,
			Selected: fmt.Sprintf("%s {{ .Label | bold }} ", GreenText("✔")),
		},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", runErr(err)
	}
	return items[i].Key, nil
}

// PromptField asks which field a variable binds to.
func (Prompter) PromptField(index string, options []FieldOption) (string, error) {
	prompt := promptui.Select{
		Label: fmt.Sprintf("Field for {{%s}}", index),
		Items: options,
		Templates: &promptui.SelectTemplates{
			Active:   `{{ .Label | underline }}`,
			Inactive: `{{ .Label }}`,
			Selected: fmt.Sprintf("%s {{ .Label | magenta | bold }} ", GreenText("✔")),
		},
	}
	i, _, err := prompt.Run()
	if err != nil {
		return "", runErr(err)
	}
	return options[i].Value, nil
}

func PromptText(text string) (string, error) {
	prompt := promptui.Prompt{
		Label: text,
	}
	v, err := prompt.Run()
	return v, runErr(err)
}

func PromptConfirm(text string) bool {
	prompt := promptui.Prompt{
		Label:     text,
		IsConfirm: true,
	}
	_, err := prompt.Run()
	return err == nil
}
