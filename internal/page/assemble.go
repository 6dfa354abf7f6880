package page

import (
	"fmt"
	"html"
	"strings"
)

const (
	postSeparator    = "\n<hr>\n"
	tocSeparator     = "<br>"
	emptyPlaceholder = "<p class='empty'>No posts yet.</p>"
)

// Entry is one compiled post ready for assembly, in final page order.
type Entry struct {
	ID   string
	HTML string
}

// Fragments holds the two strings that fill the template slots.
type Fragments struct {
	TOC  string
	Body string
}

// Assemble builds the table of contents and the post body from entries,
// preserving their order. With no entries the body carries a placeholder
// paragraph and the table of contents is empty.
func Assemble(entries []Entry) Fragments {
	if len(entries) == 0 {
		return Fragments{TOC: "", Body: emptyPlaceholder}
	}

	tocParts := make([]string, 0, len(entries))
	bodyParts := make([]string, 0, len(entries))
	for _, e := range entries {
		tocParts = append(tocParts, tocLink(e.ID))
		bodyParts = append(bodyParts, article(e))
	}

	return Fragments{
		TOC:  strings.Join(tocParts, tocSeparator),
		Body: strings.Join(bodyParts, postSeparator),
	}
}

func tocLink(id string) string {
	return fmt.Sprintf("<a href='#%s'>- %s</a>", id, html.EscapeString(id))
}

func article(e Entry) string {
	return fmt.Sprintf("<a id='%s'></a>\n<article class='post' id='%s'>\n%s\n</article>", e.ID, e.ID, e.HTML)
}
