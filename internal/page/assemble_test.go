package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssembleSinglePost(t *testing.T) {
	got := Assemble([]Entry{{ID: "first-post", HTML: "hello<br>"}})

	assert.Equal(t, "<a href='#first-post'>- first-post</a>", got.TOC)
	assert.Equal(t, "<a id='first-post'></a>\n<article class='post' id='first-post'>\nhello<br>\n</article>", got.Body)
}

func TestAssemblePreservesOrder(t *testing.T) {
	got := Assemble([]Entry{
		{ID: "newer", HTML: "n"},
		{ID: "older", HTML: "o"},
	})

	assert.Equal(t, "<a href='#newer'>- newer</a><br><a href='#older'>- older</a>", got.TOC)
	assert.Equal(t,
		"<a id='newer'></a>\n<article class='post' id='newer'>\nn\n</article>"+
			"\n<hr>\n"+
			"<a id='older'></a>\n<article class='post' id='older'>\no\n</article>",
		got.Body)
}

func TestAssembleEmpty(t *testing.T) {
	got := Assemble(nil)

	assert.Empty(t, got.TOC)
	assert.Equal(t, "<p class='empty'>No posts yet.</p>", got.Body)
}

func TestAssembleEscapesLabel(t *testing.T) {
	got := Assemble([]Entry{{ID: "a&b", HTML: "x"}})

	assert.Contains(t, got.TOC, "- a&amp;b</a>")
	assert.Contains(t, got.TOC, "href='#a&b'")
}
