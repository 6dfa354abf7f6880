package page

import (
	"io"
	"strings"

	"golang.org/x/net/html"
)

// VerifyReport summarizes the link structure of a rendered page.
type VerifyReport struct {
	Articles int
	Anchors  []string
	Links    []string
	Dangling []string
}

// OK reports whether every in-page link resolves to an anchor.
func (r *VerifyReport) OK() bool {
	return len(r.Dangling) == 0
}

// Verify parses a rendered page and cross-checks the table of contents
// against the post anchors. It reports article count, anchor ids, in-page
// link targets, and any link whose target id does not exist.
func Verify(r io.Reader) (*VerifyReport, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	report := &VerifyReport{}
	ids := make(map[string]bool)
	collect(doc, report, ids)

	for _, target := range report.Links {
		if !ids[target] {
			report.Dangling = append(report.Dangling, target)
		}
	}
	return report, nil
}

func collect(n *html.Node, report *VerifyReport, ids map[string]bool) {
	if n.Type == html.ElementNode {
		switch n.Data {
		case "article":
			report.Articles++
		case "a":
			if href := getAttr(n, "href"); strings.HasPrefix(href, "#") {
				report.Links = append(report.Links, strings.TrimPrefix(href, "#"))
			}
		}
		if id := getAttr(n, "id"); id != "" && !ids[id] {
			ids[id] = true
			report.Anchors = append(report.Anchors, id)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collect(c, report, ids)
	}
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
