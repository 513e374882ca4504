package tui

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"marquee/internal/domain"
)

func TestCycleCategoryWrapsAround(t *testing.T) {
	assert.Equal(t, domain.CategoryTrending, cycleCategory(domain.CategoryPopular, 1))
	assert.Equal(t, domain.CategoryNowPlaying, cycleCategory(domain.CategoryPopular, -1))
	assert.Equal(t, domain.CategoryPopular, cycleCategory(domain.CategoryNowPlaying, 1))
}

func TestCycleCategoryUnknownFallsBack(t *testing.T) {
	assert.Equal(t, domain.CategoryPopular, cycleCategory(domain.Category(99), 1))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, "one two\nthree", wrapText("one two three", 8))
	assert.Equal(t, "short", wrapText("short", 80))
	assert.Equal(t, "unwrapped text", wrapText("unwrapped text", 0))
}
