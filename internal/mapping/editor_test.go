package mapping_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/japb1998/wacrm/internal/mapping"
)

type fakeSaver struct {
	mu      sync.Mutex
	calls   []mapping.Mapping
	err     error
	block   chan struct{}
	started chan struct{}
	stored  map[string]mapping.Mapping
}

func newFakeSaver() *fakeSaver {
	return &fakeSaver{stored: map[string]mapping.Mapping{}}
}

func (f *fakeSaver) SaveMapping(ctx context.Context, templateId string, m mapping.Mapping) (mapping.Mapping, error) {
	f.mu.Lock()
	f.calls = append(f.calls, m)
	block, started, err := f.block, f.started, f.err
	f.mu.Unlock()

	if started != nil {
		close(started)
	}
	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return mapping.Mapping{}, ctx.Err()
		}
	}
	if err != nil {
		return mapping.Mapping{}, err
	}
	f.mu.Lock()
	f.stored[templateId] = m
	f.mu.Unlock()
	return m, nil
}

func TestEditorCancelKeepsPersisted(t *testing.T) {
	saver := newFakeSaver()
	persisted := mapping.Present(map[string]string{"1": "name"})
	e := mapping.NewEditor("tpl", []string{"1", "2"}, persisted, saver)

	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("2", "phone_number"))
	require.NoError(t, e.Cancel())

	assert.Equal(t, mapping.Viewing, e.State())
	assert.True(t, e.Persisted().Equal(persisted))
	assert.Nil(t, e.Scratch())
	assert.Empty(t, saver.calls)
}

func TestEditorScratchIsIndependent(t *testing.T) {
	persisted := mapping.Present(map[string]string{"1": "name"})
	e := mapping.NewEditor("tpl", []string{"1"}, persisted, newFakeSaver())

	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("1", "custom_data.city"))

	f, _ := e.Persisted().Get("1")
	assert.Equal(t, "name", f)
	assert.Equal(t, map[string]string{"1": "custom_data.city"}, e.Scratch())
}

func TestEditorSaveEmptyScratchIsAbsent(t *testing.T) {
	saver := newFakeSaver()
	e := mapping.NewEditor("tpl", []string{"1"}, mapping.Absent(), saver)

	require.NoError(t, e.Edit())
	require.NoError(t, e.Save(context.Background()))

	require.Len(t, saver.calls, 1)
	assert.False(t, saver.calls[0].IsPresent())
	assert.False(t, e.Persisted().IsPresent())
	assert.Equal(t, mapping.Viewing, e.State())
}

func TestEditorRemovingLastEntrySavesAbsent(t *testing.T) {
	saver := newFakeSaver()
	e := mapping.NewEditor("tpl", []string{"1"}, mapping.Absent(), saver)

	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("1", "name"))
	require.NoError(t, e.Save(context.Background()))
	assert.True(t, e.Persisted().IsPresent())

	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("1", ""))
	require.NoError(t, e.Save(context.Background()))

	assert.False(t, e.Persisted().IsPresent())
	assert.False(t, saver.stored["tpl"].IsPresent())
}

func TestEditorSelectRejectsUnknownVariable(t *testing.T) {
	e := mapping.NewEditor("tpl", []string{"1", "2"}, mapping.Absent(), newFakeSaver())

	assert.ErrorIs(t, e.Select("1", "name"), mapping.ErrNotEditing)

	require.NoError(t, e.Edit())
	assert.ErrorIs(t, e.Select("3", "name"), mapping.ErrUnknownVariable)
	assert.ErrorIs(t, e.Select("1", "email"), mapping.ErrInvalidFieldRef)
	assert.Empty(t, e.Scratch())
}

func TestEditorSaveFailureKeepsScratch(t *testing.T) {
	saver := newFakeSaver()
	saver.err = errors.New("boom")
	e := mapping.NewEditor("tpl", []string{"1", "2"}, mapping.Absent(), saver)

	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("1", "name"))
	require.NoError(t, e.Select("2", "custom_data.city"))

	err := e.Save(context.Background())
	require.Error(t, err)
	assert.Equal(t, mapping.Editing, e.State())
	assert.Equal(t, err, e.Err())
	assert.Equal(t, map[string]string{"1": "name", "2": "custom_data.city"}, e.Scratch())

	saver.mu.Lock()
	saver.err = nil
	saver.mu.Unlock()

	require.NoError(t, e.Save(context.Background()))
	assert.Nil(t, e.Err())
	assert.Len(t, saver.calls, 2)
}

func TestEditorRejectsConcurrentSave(t *testing.T) {
	saver := newFakeSaver()
	saver.block = make(chan struct{})
	saver.started = make(chan struct{})
	e := mapping.NewEditor("tpl", []string{"1"}, mapping.Absent(), saver)
	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("1", "name"))

	done := make(chan error, 1)
	go func() {
		done <- e.Save(context.Background())
	}()
	<-saver.started

	assert.Equal(t, mapping.Saving, e.State())
	assert.ErrorIs(t, e.Save(context.Background()), mapping.ErrSaveInFlight)
	assert.ErrorIs(t, e.Select("1", "phone_number"), mapping.ErrNotEditing)

	close(saver.block)
	require.NoError(t, <-done)
	assert.Len(t, saver.calls, 1)
}

func TestEditorSaveTimesOut(t *testing.T) {
	saver := newFakeSaver()
	saver.block = make(chan struct{})
	e := mapping.NewEditor("tpl", []string{"1"}, mapping.Absent(), saver, mapping.WithSaveTimeout(20*time.Millisecond))
	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("1", "name"))

	err := e.Save(context.Background())

	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, mapping.Editing, e.State())
	assert.Equal(t, map[string]string{"1": "name"}, e.Scratch())
}

func TestEditorRows(t *testing.T) {
	persisted := mapping.Present(map[string]string{"1": "name", "3": "custom_data.city"})
	e := mapping.NewEditor("tpl", []string{"1", "2", "3"}, persisted, newFakeSaver())

	assert.Equal(t, []mapping.Row{
		{Index: "1", Field: "name", Label: "Name"},
		{Index: "2", Label: "-"},
		{Index: "3", Field: "custom_data.city", Label: "city (custom)"},
	}, e.Rows())

	require.NoError(t, e.Edit())
	require.NoError(t, e.Select("2", "phone_number"))
	assert.Equal(t, "Phone number", e.Rows()[1].Label)
}

func TestEditorNoVariables(t *testing.T) {
	e := mapping.NewEditor("tpl", nil, mapping.Absent(), newFakeSaver())
	assert.True(t, e.NoVariables())
	assert.Empty(t, e.Rows())
}
