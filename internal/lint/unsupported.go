package lint

import (
	"fmt"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/mkarlsen/blogbuilder/internal/posts"
)

// UnsupportedMarkdownRule parses a post as CommonMark and reports constructs
// the compile chain passes through as literal text. Authors coming from full
// markdown tend to reach for emphasis and bullet lists; the page just shows
// the raw asterisks.
type UnsupportedMarkdownRule struct{}

func (r *UnsupportedMarkdownRule) Name() string { return "unsupported-markdown" }

func (r *UnsupportedMarkdownRule) Check(post posts.Post) []Issue {
	source := []byte(post.Raw)
	md := goldmark.New()
	root := md.Parser().Parse(text.NewReader(source))

	var issues []Issue
	report := func(what string, line int) {
		issues = append(issues, Issue{
			Post:     post.ID,
			File:     post.Path,
			Severity: SeverityInfo,
			Rule:     r.Name(),
			Message:  fmt.Sprintf("%s is not supported and renders as literal text", what),
			Line:     line,
		})
	}

	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gmast.Heading:
			// Only ## and ### have compile rules.
			if node.Level != 2 && node.Level != 3 {
				report(fmt.Sprintf("level %d heading", node.Level), blockLine(source, node))
			}
		case *gmast.Emphasis:
			report("emphasis", 0)
		case *gmast.List:
			report("list", blockLine(source, node))
			return gmast.WalkSkipChildren, nil
		case *gmast.Blockquote:
			report("blockquote", blockLine(source, node))
			return gmast.WalkSkipChildren, nil
		case *gmast.Link:
			report("markdown link", 0)
		case *gmast.Image:
			report("markdown image", 0)
		}
		return gmast.WalkContinue, nil
	})

	return issues
}

// blockLine resolves a block node to the 1-based line of its first segment.
// Container nodes without their own lines resolve through their first child.
func blockLine(source []byte, n gmast.Node) int {
	for n != nil {
		if n.Type() == gmast.TypeBlock && n.Lines().Len() > 0 {
			return lineOf(string(source), n.Lines().At(0).Start)
		}
		n = n.FirstChild()
	}
	return 0
}
