package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/jot/pkg/core"
	"github.com/aretw0/jot/pkg/view"
)

func TestSortByRecency(t *testing.T) {
	notes := []core.Note{
		{ID: "a", CreatedAt: epoch},
		{ID: "b", CreatedAt: epoch, UpdatedAt: epoch.Add(2 * time.Hour)},
		{ID: "c", CreatedAt: epoch.Add(time.Hour)},
		{ID: "d", CreatedAt: epoch}, // ties with a
	}

	got := view.SortByRecency(notes)
	assert.Equal(t, []string{"b", "c", "a", "d"}, ids(got))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(notes), "input is untouched")
}

func TestSortByRecency_Empty(t *testing.T) {
	got := view.SortByRecency(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestThemeToggle(t *testing.T) {
	assert.Equal(t, view.ThemeDark, view.ThemeLight.Toggle())
	assert.Equal(t, view.ThemeLight, view.ThemeDark.Toggle())
	assert.Equal(t, view.ThemeDark, view.Theme("sepia").Toggle())
}
