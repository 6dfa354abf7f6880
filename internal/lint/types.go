// Package lint checks blog posts for constructs the compiler handles badly.
// Every rule is grounded in a documented limitation of the compile chain; the
// linter warns where the page would come out wrong, it never rewrites posts.
package lint

import "github.com/mkarlsen/blogbuilder/internal/posts"

// Severity indicates the importance level of a lint issue.
type Severity int

const (
	// SeverityInfo marks accepted quirks of the format worth knowing about.
	SeverityInfo Severity = iota
	// SeverityWarning marks constructs that will visibly corrupt the page.
	SeverityWarning
	// SeverityError is reserved for issues that should block a build.
	SeverityError
)

// String returns the human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "INFO"
	case SeverityWarning:
		return "WARNING"
	case SeverityError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MarshalJSON emits the severity name rather than its numeric value.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Issue represents a single problem found in a post.
type Issue struct {
	Post     string   `json:"post"`
	File     string   `json:"file"`
	Severity Severity `json:"severity"`
	Rule     string   `json:"rule"`
	Message  string   `json:"message"`
	Line     int      `json:"line,omitempty"` // 0 for file-level issues
}

// Result contains all issues found during linting.
type Result struct {
	Issues     []Issue `json:"issues"`
	PostsTotal int     `json:"posts_total"`
}

// HasErrors returns true if any error-level issues exist.
func (r *Result) HasErrors() bool {
	return r.count(SeverityError) > 0
}

// HasWarnings returns true if any warning-level issues exist.
func (r *Result) HasWarnings() bool {
	return r.count(SeverityWarning) > 0
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int { return r.count(SeverityError) }

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int { return r.count(SeverityWarning) }

// InfoCount returns the number of info-level issues.
func (r *Result) InfoCount() int { return r.count(SeverityInfo) }

func (r *Result) count(sev Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity == sev {
			n++
		}
	}
	return n
}

// Rule checks one post against one compiler limitation.
type Rule interface {
	// Name returns the unique identifier for this rule.
	Name() string

	// Check inspects a post's raw text and returns any issues found.
	Check(post posts.Post) []Issue
}
