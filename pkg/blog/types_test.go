package blog_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velidenizayhan/blog/pkg/blog"
)

func TestParseSortDirection(t *testing.T) {
	assert.Equal(t, blog.SortOldestFirst, blog.ParseSortDirection("asc"))
	assert.Equal(t, blog.SortNewestFirst, blog.ParseSortDirection("desc"))

	// Anything unrecognized falls back to newest-first
	assert.Equal(t, blog.SortNewestFirst, blog.ParseSortDirection(""))
	assert.Equal(t, blog.SortNewestFirst, blog.ParseSortDirection("ASC"))
	assert.Equal(t, blog.SortNewestFirst, blog.ParseSortDirection("newest"))
}

func TestPostExcerpt(t *testing.T) {
	short := &blog.Post{Content: "short content"}
	assert.Equal(t, "short content", short.Excerpt())

	exact := &blog.Post{Content: strings.Repeat("a", blog.ExcerptLength)}
	assert.Equal(t, exact.Content, exact.Excerpt())

	long := &blog.Post{Content: strings.Repeat("a", blog.ExcerptLength+1)}
	assert.Equal(t, strings.Repeat("a", blog.ExcerptLength)+"...", long.Excerpt())
}

func TestPostExcerptCountsRunes(t *testing.T) {
	long := &blog.Post{Content: strings.Repeat("ş", blog.ExcerptLength+10)}

	got := long.Excerpt()
	assert.Equal(t, strings.Repeat("ş", blog.ExcerptLength)+"...", got)
	assert.Equal(t, blog.ExcerptLength+3, len([]rune(got)))
}
