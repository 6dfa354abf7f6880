// Package compiler turns the markdown subset used by blog posts into an HTML
// fragment. The whole format is defined by an ordered chain of textual
// substitution rules; the order of the chain is part of the format and must
// not be rearranged.
package compiler

import (
	"regexp"
	"strings"
)

// Rule is a single substitution step in the compile chain.
type Rule struct {
	// Name identifies the rule in CLI output and tests.
	Name string

	// Summary is a one-line description of what the rule rewrites.
	Summary string

	apply func(string) string
}

var (
	h4Pattern       = regexp.MustCompile("### (.*?)\n")
	h3Pattern       = regexp.MustCompile("## (.*?)\n")
	autolinkPattern = regexp.MustCompile(`(https://[^\s<]+)(\s)`)
	haskellPattern  = regexp.MustCompile("(?s)```hs\n(.*?)```")
	fencePattern    = regexp.MustCompile("(?s)```(.*?)```")
)

// chain is the compile pipeline. Ordering constraints:
//
//   - h4 before h3: the two-hash pattern also matches inside three-hash
//     headings (## is a prefix of ###), so reversing them demotes h4 lines.
//   - autolink before the fence rules: URLs inside fenced code get linked.
//     Known quirk of the format, kept on purpose.
//   - haskell fences before plain fences: the plain rule would otherwise
//     swallow the hs tag into the code body.
//   - newline normalization after the fence rules and before line breaks.
var chain = []Rule{
	{
		Name:    "h4-headings",
		Summary: "### lines become <h4> elements",
		apply: func(s string) string {
			return h4Pattern.ReplaceAllString(s, "<h4>${1}</h4>\n")
		},
	},
	{
		Name:    "h3-headings",
		Summary: "## lines become <h3> elements",
		apply: func(s string) string {
			return h3Pattern.ReplaceAllString(s, "<h3>${1}</h3>\n")
		},
	},
	{
		Name:    "autolink-urls",
		Summary: "https:// URLs followed by whitespace become anchors",
		apply: func(s string) string {
			return autolinkPattern.ReplaceAllString(s, "<a href='${1}'>${1}</a>${2}")
		},
	},
	{
		Name:    "haskell-fences",
		Summary: "```hs blocks become <pre><code class='language-haskell'>",
		apply: func(s string) string {
			return haskellPattern.ReplaceAllString(s, "<pre><code class='language-haskell'>${1}</code></pre>")
		},
	},
	{
		Name:    "code-fences",
		Summary: "``` blocks become <pre><code>",
		apply: func(s string) string {
			return fencePattern.ReplaceAllString(s, "<pre><code>${1}</code></pre>")
		},
	},
	{
		Name:    "normalize-newlines",
		Summary: "CRLF and lone CR become LF",
		apply: func(s string) string {
			s = strings.ReplaceAll(s, "\r\n", "\n")
			return strings.ReplaceAll(s, "\r", "\n")
		},
	},
	{
		Name:    "line-breaks",
		Summary: "LF becomes <br>",
		apply: func(s string) string {
			return strings.ReplaceAll(s, "\n", "<br>")
		},
	},
}

// Compile converts raw post text to an HTML fragment. It is total and pure:
// defined for every input string, no I/O, no error path. Output for inputs
// outside the supported subset (unclosed fences, stray markers) is whatever
// the rule chain produces; it is not further specified, only stable.
//
// Headings consume their trailing newline and re-insert it, so a heading-only
// input still picks up a trailing <br> from the line-break rule. URLs at the
// very end of the input have no trailing whitespace to anchor the autolink
// match and stay plain text; punctuation glued to a URL becomes part of the
// link target. Both are accepted limitations of the format.
func Compile(raw string) string {
	for _, rule := range chain {
		raw = rule.apply(raw)
	}
	return raw
}

// Rules returns the compile chain in execution order.
func Rules() []Rule {
	out := make([]Rule, len(chain))
	copy(out, chain)
	return out
}
