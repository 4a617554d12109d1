package autoevents

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestHiddenKey(t *testing.T) {
	day := time.Date(2025, time.June, 21, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "f-te-de-la-musique-2025-06-21", HiddenKey("Fête de la Musique", day))
	assert.Equal(t, "black-friday-2025-06-21", HiddenKey("  Black Friday ", day))
	assert.Equal(t, "soldes-d-hiver-2025-06-21", HiddenKey("Soldes d'hiver", day))
}

func TestHiddenKeyUsesLocalCalendarDate(t *testing.T) {
	loc := paris(t)
	midnight := time.Date(2025, time.July, 14, 0, 0, 0, 0, loc)
	assert.Equal(t, "f-te-nationale-2025-07-14", HiddenKey("Fête nationale", midnight))
}

func TestSlugKeepsDashRuns(t *testing.T) {
	assert.Equal(t, "l--t-", Slug("l'été"))
	assert.Equal(t, "a--b", Slug("a  b"))
	assert.Equal(t, "abc123", Slug("abc123"))
}

func TestHiddenSet(t *testing.T) {
	var empty HiddenSet
	assert.False(t, empty.Has("x"))

	set := NewHiddenSet("a", "b", "a")
	assert.True(t, set.Has("a"))
	assert.False(t, set.Has("c"))
	assert.ElementsMatch(t, []string{"a", "b"}, set.Keys())
}
