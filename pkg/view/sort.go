package view

import (
	"slices"

	"github.com/aretw0/jot/pkg/core"
)

// SortByRecency returns a copy of notes ordered by Touched time, most recent
// first. Ties keep their input order. The input is not modified.
func SortByRecency(notes []core.Note) []core.Note {
	out := make([]core.Note, len(notes))
	copy(out, notes)
	slices.SortStableFunc(out, func(a, b core.Note) int {
		return b.Touched().Compare(a.Touched())
	})
	return out
}
