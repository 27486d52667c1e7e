package view

import (
	"fmt"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/jot/pkg/core"
)

// Match keeps the notes whose title matches the glob pattern
// (`*`, `?`, `[...]`, `{a,b}` and `**`). An empty pattern keeps everything.
func Match(notes []core.Note, pattern string) ([]core.Note, error) {
	if pattern == "" {
		return notes, nil
	}
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("invalid pattern: %q", pattern)
	}

	out := make([]core.Note, 0, len(notes))
	for _, n := range notes {
		ok, err := doublestar.Match(pattern, n.Title)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, n)
		}
	}
	return out, nil
}
