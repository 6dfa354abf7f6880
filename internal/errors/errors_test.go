package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"
)

func TestBlogBuilderError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *BlogBuilderError
		expected string
	}{
		{
			name:     "error without cause",
			err:      New(CategoryConfig, SeverityFatal, "configuration invalid"),
			expected: "config (fatal): configuration invalid",
		},
		{
			name:     "error with cause",
			err:      Wrap(fmt.Errorf("file not found"), CategoryConfig, SeverityFatal, "failed to load config"),
			expected: "config (fatal): failed to load config: file not found",
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := test.err.Error()
			if result != test.expected {
				t.Errorf("Error() = %q, want %q", result, test.expected)
			}
		})
	}
}

func TestBlogBuilderError_WithContext(t *testing.T) {
	err := PostsDirMissing("./blogs").
		WithContext("order", "mtime")

	if err.Context == nil {
		t.Fatal("Context should not be nil")
	}

	if err.Context["path"] != "./blogs" {
		t.Errorf("Context[path] = %v, want ./blogs", err.Context["path"])
	}

	if err.Context["order"] != "mtime" {
		t.Errorf("Context[order] = %v, want mtime", err.Context["order"])
	}
}

func TestUnwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := Wrap(cause, CategoryTemplate, SeverityFatal, "template load failed")

	if !stdErrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
}

func TestIsCategory(t *testing.T) {
	configErr := ConfigNotFound("config.yaml")
	postsErr := PostsDirMissing("./blogs")
	standardErr := fmt.Errorf("standard error")

	tests := []struct {
		name     string
		err      error
		category ErrorCategory
		want     bool
	}{
		{"config error matches config", configErr, CategoryConfig, true},
		{"config error does not match posts", configErr, CategoryPosts, false},
		{"posts error matches posts", postsErr, CategoryPosts, true},
		{"wrapped structured error matches", fmt.Errorf("outer: %w", postsErr), CategoryPosts, true},
		{"standard error matches nothing", standardErr, CategoryConfig, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := IsCategory(test.err, test.category); got != test.want {
				t.Errorf("IsCategory() = %v, want %v", got, test.want)
			}
		})
	}
}

func TestExitCodes(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"config error", ConfigNotFound("config.yaml"), 7},
		{"validation error", ValidationFailed("order", "unknown mode"), 2},
		{"posts error", PostsDirMissing("./blogs"), 3},
		{"template error", TemplateMissing("tpl.html"), 3},
		{"build error", BuildFailed("assemble", fmt.Errorf("boom")), 11},
		{"plain error", fmt.Errorf("boom"), 1},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := adapter.ExitCodeFor(test.err); got != test.want {
				t.Errorf("ExitCodeFor() = %d, want %d", got, test.want)
			}
		})
	}
}

func TestFormatErrorNamesPath(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	got := adapter.FormatError(PostsDirMissing("/var/posts"))
	want := "posts directory not found: /var/posts"
	if got != want {
		t.Errorf("FormatError() = %q, want %q", got, want)
	}
}
