package query

import (
	"encoding/json"
	"testing"

	"DBsentinel-Gateway/internal/app/ds"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func action(t *testing.T, typ ActionType, value interface{}) Action {
	t.Helper()
	raw, err := json.Marshal(value)
	require.NoError(t, err)
	return Action{Type: typ, Value: raw}
}

func TestApply_NSFWClearsSFW(t *testing.T) {
	state, err := Apply(ds.DefaultFilterState(), action(t, ActionSetNSFW, true))
	require.NoError(t, err)

	assert.True(t, state.NSFW)
	assert.False(t, state.SFW)
	assert.Equal(t, boolPtr(true), Encode(state).NSFW)
}

func TestApply_UncheckingLeavesOtherBox(t *testing.T) {
	state, err := Apply(ds.DefaultFilterState(), action(t, ActionSetSFW, false))
	require.NoError(t, err)

	assert.False(t, state.SFW)
	assert.False(t, state.NSFW)
	assert.Nil(t, Encode(state).NSFW)
}

func TestApply_ResetsPage(t *testing.T) {
	start := ds.DefaultFilterState()
	start.Page = 4

	for _, a := range []Action{
		action(t, ActionSetTitle, "bocchi"),
		action(t, ActionSetEntryType, "manga"),
		action(t, ActionSetMediaType, "tv"),
		action(t, ActionSetSFW, true),
		action(t, ActionSetNSFW, false),
		action(t, ActionSetApprovedStatus, "approved"),
		action(t, ActionSetOrderBy, "title"),
		action(t, ActionSetSort, "asc"),
		action(t, ActionSetLimit, 25),
	} {
		state, err := Apply(start, a)
		require.NoError(t, err, a.Type)
		assert.Zero(t, state.Page, a.Type)
		assert.True(t, a.ResetsPagination(), a.Type)
	}

	page := action(t, ActionSetPage, 2)
	state, err := Apply(start, page)
	require.NoError(t, err)
	assert.Equal(t, 2, state.Page)
	assert.False(t, page.ResetsPagination())
}

func TestApply_EntryTypeClearsMediaType(t *testing.T) {
	start := ds.DefaultFilterState()
	start.MediaType = "tv"

	state, err := Apply(start, action(t, ActionSetEntryType, "Manga"))
	require.NoError(t, err)
	assert.Equal(t, "manga", state.EntryType)
	assert.Empty(t, state.MediaType)
}

func TestApply_MediaTypeAll(t *testing.T) {
	start := ds.DefaultFilterState()
	start.MediaType = "tv"

	state, err := Apply(start, action(t, ActionSetMediaType, "all"))
	require.NoError(t, err)
	assert.Empty(t, state.MediaType)
}

func TestApply_LenientValues(t *testing.T) {
	state, err := Apply(ds.DefaultFilterState(), action(t, ActionSetPage, "3"))
	require.NoError(t, err)
	assert.Equal(t, 3, state.Page)

	state, err = Apply(ds.DefaultFilterState(), action(t, ActionSetNSFW, "true"))
	require.NoError(t, err)
	assert.True(t, state.NSFW)

	state, err = Apply(ds.DefaultFilterState(), action(t, ActionSetPage, -5))
	require.NoError(t, err)
	assert.Zero(t, state.Page)
}

func TestApply_InvalidAction(t *testing.T) {
	_, err := Apply(ds.DefaultFilterState(), action(t, "set_colour", "red"))
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = Apply(ds.DefaultFilterState(), action(t, ActionSetPage, "two"))
	assert.ErrorIs(t, err, ErrInvalidAction)

	_, err = Apply(ds.DefaultFilterState(), action(t, ActionSetTitle, 42))
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	start := ds.DefaultFilterState()
	_, err := Apply(start, action(t, ActionSetTitle, "x"))
	require.NoError(t, err)
	assert.Equal(t, ds.DefaultFilterState(), start)
}

func TestDebounced(t *testing.T) {
	assert.True(t, action(t, ActionSetTitle, "x").Debounced())
	assert.False(t, action(t, ActionSetSort, "asc").Debounced())
}
