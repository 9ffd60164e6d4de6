package mapping

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const DefaultSaveTimeout = 15 * time.Second

var (
	ErrNotViewing      = errors.New("editor is not in viewing state")
	ErrNotEditing      = errors.New("editor is not in editing state")
	ErrSaveInFlight    = errors.New("a save is already in flight")
	ErrUnknownVariable = errors.New("variable is not present in the template body")
)

type State int

const (
	Viewing State = iota
	Editing
	Saving
)

func (s State) String() string {
	switch s {
	case Viewing:
		return "viewing"
	case Editing:
		return "editing"
	case Saving:
		return "saving"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Saver persists a mapping for a template and returns what was stored.
type Saver interface {
	SaveMapping(ctx context.Context, templateId string, m Mapping) (Mapping, error)
}

// Row is one line of the read-only mapping table.
type Row struct {
	Index string
	Field string
	Label string
}

type EditorOption func(*Editor)

func WithSaveTimeout(d time.Duration) EditorOption {
	return func(e *Editor) {
		e.timeout = d
	}
}

// Editor holds the mapping of a single template while it is viewed and edited.
// The offered variables are fixed at construction to what the template body
// references. Only one save may be in flight at a time.
type Editor struct {
	mu         sync.Mutex
	templateId string
	variables  []string
	known      map[string]struct{}
	persisted  Mapping
	scratch    map[string]string
	state      State
	err        error
	saver      Saver
	timeout    time.Duration
}

func NewEditor(templateId string, variables []string, persisted Mapping, saver Saver, opts ...EditorOption) *Editor {
	vars := append([]string(nil), variables...)
	known := make(map[string]struct{}, len(vars))
	for _, v := range vars {
		known[v] = struct{}{}
	}
	e := &Editor{
		templateId: templateId,
		variables:  vars,
		known:      known,
		persisted:  persisted,
		state:      Viewing,
		saver:      saver,
		timeout:    DefaultSaveTimeout,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Editor) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// Err is the error of the last failed save, cleared by the next successful one.
func (e *Editor) Err() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.err
}

func (e *Editor) Variables() []string {
	return append([]string(nil), e.variables...)
}

// NoVariables reports that the template has nothing to map.
func (e *Editor) NoVariables() bool {
	return len(e.variables) == 0
}

func (e *Editor) Persisted() Mapping {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.persisted
}

// Scratch returns a copy of the unsaved entries, nil outside of editing.
func (e *Editor) Scratch() map[string]string {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.scratch == nil {
		return nil
	}
	cp := make(map[string]string, len(e.scratch))
	for k, v := range e.scratch {
		cp[k] = v
	}
	return cp
}

// Edit copies the persisted mapping into scratch state.
func (e *Editor) Edit() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Viewing {
		return ErrNotViewing
	}
	e.scratch = e.persisted.Entries()
	if e.scratch == nil {
		e.scratch = map[string]string{}
	}
	e.err = nil
	e.state = Editing
	return nil
}

// Select binds one variable to a field. An empty field unsets the variable.
func (e *Editor) Select(index, field string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	if _, ok := e.known[index]; !ok {
		return fmt.Errorf("%w: %s", ErrUnknownVariable, index)
	}
	if field == "" {
		delete(e.scratch, index)
		return nil
	}
	if _, err := ParseFieldRef(field); err != nil {
		return err
	}
	e.scratch[index] = field
	return nil
}

// Cancel drops scratch state and goes back to viewing the persisted mapping.
func (e *Editor) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state != Editing {
		return ErrNotEditing
	}
	e.scratch = nil
	e.err = nil
	e.state = Viewing
	return nil
}

// Save sends scratch state as the new mapping. Empty scratch is sent as Absent.
// On failure the editor stays in editing with scratch untouched.
func (e *Editor) Save(ctx context.Context) error {
	e.mu.Lock()
	switch e.state {
	case Saving:
		e.mu.Unlock()
		return ErrSaveInFlight
	case Viewing:
		e.mu.Unlock()
		return ErrNotEditing
	}
	m := FromEntries(e.scratch)
	e.state = Saving
	e.mu.Unlock()

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}

	saved, err := e.saver.SaveMapping(ctx, e.templateId, m)

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.err = fmt.Errorf("failed to save mapping for template '%s': %w", e.templateId, err)
		e.state = Editing
		return e.err
	}
	e.persisted = saved
	e.scratch = nil
	e.err = nil
	e.state = Viewing
	return nil
}

// Rows lists every template variable with its current field, "-" when unmapped.
// While editing, rows reflect scratch state.
func (e *Editor) Rows() []Row {
	e.mu.Lock()
	defer e.mu.Unlock()
	rows := make([]Row, 0, len(e.variables))
	for _, idx := range e.variables {
		var field string
		var ok bool
		if e.scratch != nil {
			field, ok = e.scratch[idx]
		} else {
			field, ok = e.persisted.Get(idx)
		}
		r := Row{Index: idx, Label: EmptyValue}
		if ok {
			r.Field = field
			r.Label = Label(field)
		}
		rows = append(rows, r)
	}
	return rows
}
