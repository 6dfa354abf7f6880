package lint

import (
	"log/slog"

	"github.com/mkarlsen/blogbuilder/internal/logfields"
	"github.com/mkarlsen/blogbuilder/internal/posts"
)

// Linter applies lint rules to discovered posts.
type Linter struct {
	rules []Rule
}

// NewLinter creates a linter with the default rule set.
func NewLinter() *Linter {
	return &Linter{rules: DefaultRules()}
}

// NewLinterWithRules creates a linter with an explicit rule set.
func NewLinterWithRules(rules []Rule) *Linter {
	return &Linter{rules: rules}
}

// Lint checks every post and collects the issues in post order.
func (l *Linter) Lint(found []posts.Post) *Result {
	result := &Result{
		Issues:     []Issue{},
		PostsTotal: len(found),
	}

	for _, post := range found {
		for _, rule := range l.rules {
			issues := rule.Check(post)
			for _, issue := range issues {
				slog.Debug("Lint issue",
					logfields.Post(post.ID),
					logfields.Rule(issue.Rule),
					slog.String("severity", issue.Severity.String()))
			}
			result.Issues = append(result.Issues, issues...)
		}
	}

	return result
}
