package lint

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mkarlsen/blogbuilder/internal/posts"
)

// DefaultRules returns every lint rule in reporting order.
func DefaultRules() []Rule {
	return []Rule{
		&UnclosedFenceRule{},
		&BareTailURLRule{},
		&URLTrailingPunctuationRule{},
		&UnsupportedMarkdownRule{},
		&CarriageReturnRule{},
	}
}

// UnclosedFenceRule flags posts with an odd number of fence delimiters. The
// fence rules match delimiter pairs shortest-first, so a stray delimiter
// shifts every following pair and the rest of the post renders inside a code
// block.
type UnclosedFenceRule struct{}

func (r *UnclosedFenceRule) Name() string { return "unclosed-fence" }

func (r *UnclosedFenceRule) Check(post posts.Post) []Issue {
	count := strings.Count(post.Raw, "```")
	if count%2 == 0 {
		return nil
	}
	return []Issue{{
		Post:     post.ID,
		File:     post.Path,
		Severity: SeverityWarning,
		Rule:     r.Name(),
		Message:  fmt.Sprintf("odd number of ``` delimiters (%d); everything after the unmatched fence renders as code", count),
	}}
}

var tailURLPattern = regexp.MustCompile(`https://[^\s<]+$`)

// BareTailURLRule flags an https:// URL at the absolute end of a post. The
// autolinker needs a trailing whitespace character to anchor its match, so a
// URL ending the post stays plain text.
type BareTailURLRule struct{}

func (r *BareTailURLRule) Name() string { return "bare-tail-url" }

func (r *BareTailURLRule) Check(post posts.Post) []Issue {
	loc := tailURLPattern.FindStringIndex(post.Raw)
	if loc == nil {
		return nil
	}
	return []Issue{{
		Post:     post.ID,
		File:     post.Path,
		Severity: SeverityWarning,
		Rule:     r.Name(),
		Message:  "URL at end of post will not be autolinked; add text or a newline after it",
		Line:     lineOf(post.Raw, loc[0]),
	}}
}

var punctuatedURLPattern = regexp.MustCompile(`(https://[^\s<]+[.,;:!?])\s`)

// URLTrailingPunctuationRule flags autolinked URLs that end in punctuation.
// The autolinker stops at whitespace, so sentence punctuation glued to a URL
// becomes part of the link target.
type URLTrailingPunctuationRule struct{}

func (r *URLTrailingPunctuationRule) Name() string { return "url-trailing-punctuation" }

func (r *URLTrailingPunctuationRule) Check(post posts.Post) []Issue {
	var issues []Issue
	for _, loc := range punctuatedURLPattern.FindAllStringSubmatchIndex(post.Raw, -1) {
		url := post.Raw[loc[2]:loc[3]]
		issues = append(issues, Issue{
			Post:     post.ID,
			File:     post.Path,
			Severity: SeverityInfo,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("trailing %q becomes part of the link target %s", url[len(url)-1:], url),
			Line:     lineOf(post.Raw, loc[2]),
		})
	}
	return issues
}

// CarriageReturnRule flags CR characters. The compiler normalizes them away,
// so this is purely informational.
type CarriageReturnRule struct{}

func (r *CarriageReturnRule) Name() string { return "carriage-returns" }

func (r *CarriageReturnRule) Check(post posts.Post) []Issue {
	count := strings.Count(post.Raw, "\r")
	if count == 0 {
		return nil
	}
	return []Issue{{
		Post:     post.ID,
		File:     post.Path,
		Severity: SeverityInfo,
		Rule:     r.Name(),
		Message:  fmt.Sprintf("%d carriage return(s) present; they are normalized to line feeds at build time", count),
	}}
}

// lineOf returns the 1-based line number of a byte offset in raw.
func lineOf(raw string, offset int) int {
	return strings.Count(raw[:offset], "\n") + 1
}
