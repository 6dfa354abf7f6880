package commands

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
)

func TestInitThenBuild(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	initCmd := &InitCmd{Dir: "."}
	require.NoError(t, initCmd.Run(&Global{}, &CLI{}))

	assert.FileExists(t, filepath.Join(dir, "config.yaml"))
	assert.FileExists(t, filepath.Join(dir, "blog_template.html"))
	assert.FileExists(t, filepath.Join(dir, "blogs", "welcome.md"))
	assert.FileExists(t, filepath.Join(dir, "blogs", "_draft.md"))

	buildCmd := &BuildCmd{Verify: true}
	require.NoError(t, buildCmd.Run(&Global{}, &CLI{}))

	page, err := os.ReadFile(filepath.Join(dir, "blogs.html"))
	require.NoError(t, err)

	// The welcome post renders, the draft does not.
	assert.Contains(t, string(page), "<article class='post' id='welcome'>")
	assert.Contains(t, string(page), "<a href='#welcome'>- welcome</a>")
	assert.NotContains(t, string(page), "draft")
	assert.NotContains(t, string(page), "###BLOGS###")
	assert.NotContains(t, string(page), "###BLOG-CONTENTS###")
}

func TestInitRefusesOverwriteWithoutForce(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	require.NoError(t, (&InitCmd{Dir: "."}).Run(&Global{}, &CLI{}))
	err := (&InitCmd{Dir: "."}).Run(&Global{}, &CLI{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")
}

func TestBuildReportsMissingPostsDir(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	template := filepath.Join(dir, "tpl.html")
	require.NoError(t, os.WriteFile(template, []byte("###BLOGS### ###BLOG-CONTENTS###"), 0o644))

	cmd := &BuildCmd{PostsDir: filepath.Join(dir, "missing"), Template: template}
	err := cmd.Run(&Global{}, &CLI{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "posts directory not found")

	var bbe *bberrors.BlogBuilderError
	require.ErrorAs(t, err, &bbe)
	assert.Equal(t, filepath.Join(dir, "missing"), bbe.Context["path"])
	assert.NoFileExists(t, filepath.Join(dir, "blogs.html"))
}

func TestBuildReportsMissingTemplate(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	postsDir := filepath.Join(dir, "blogs")
	require.NoError(t, os.MkdirAll(postsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "a.md"), []byte("hi\n"), 0o644))

	cmd := &BuildCmd{PostsDir: postsDir, Template: filepath.Join(dir, "nope.html")}
	err := cmd.Run(&Global{}, &CLI{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "template file not found")
	assert.NoFileExists(t, filepath.Join(dir, "blogs.html"))
}

func TestLintCommandStrict(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	postsDir := filepath.Join(dir, "blogs")
	require.NoError(t, os.MkdirAll(postsDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(postsDir, "bad.md"),
		[]byte("```\nunclosed fence\n"), 0o644))

	relaxed := &LintCmd{Format: "text", PostsDir: postsDir}
	require.NoError(t, relaxed.Run(&Global{}, &CLI{}))

	strict := &LintCmd{Format: "text", PostsDir: postsDir, Strict: true}
	require.Error(t, strict.Run(&Global{}, &CLI{}))
}

func TestPipelineCommand(t *testing.T) {
	require.NoError(t, (&PipelineCmd{Format: "text"}).Run(&Global{}, &CLI{}))
	require.NoError(t, (&PipelineCmd{Format: "json"}).Run(&Global{}, &CLI{}))
}
