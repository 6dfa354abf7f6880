// Package page loads the site template and assembles compiled posts into the
// final HTML page.
package page

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
)

// Placeholder tokens the template must contain, one per slot.
const (
	TokenTOC  = "###BLOG-CONTENTS###"
	TokenBody = "###BLOGS###"
)

// Template is the page skeleton with both placeholder tokens present.
type Template struct {
	Path string
	Text string
}

// LoadTemplate reads and validates the template file. A missing file or a
// missing placeholder token is a fatal, categorized error naming the path.
func LoadTemplate(path string) (*Template, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bberrors.TemplateMissing(path)
		}
		return nil, fmt.Errorf("read template %s: %w", path, err)
	}

	text := decodeLossy(data)

	for _, token := range []string{TokenBody, TokenTOC} {
		if !strings.Contains(text, token) {
			return nil, bberrors.TemplateTokenMissing(path, token)
		}
	}

	return &Template{Path: path, Text: text}, nil
}

// Render substitutes both placeholder tokens and returns the final page.
func (t *Template) Render(f Fragments) string {
	out := strings.ReplaceAll(t.Text, TokenBody, f.Body)
	return strings.ReplaceAll(out, TokenTOC, f.TOC)
}

func decodeLossy(data []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(decoded)
}
