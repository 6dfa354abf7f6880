package posts

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
)

func writePost(t *testing.T, dir, name, content string, mtime time.Time) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	require.NoError(t, os.Chtimes(path, mtime, mtime))
	return path
}

func TestDiscoverFiltersAndOrders(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	writePost(t, dir, "oldest.md", "first", base)
	writePost(t, dir, "middle.md", "second", base.Add(1*time.Hour))
	writePost(t, dir, "newest.md", "third", base.Add(2*time.Hour))
	writePost(t, dir, "_draft.md", "excluded", base.Add(3*time.Hour))
	writePost(t, dir, ".hidden.md", "excluded", base.Add(3*time.Hour))
	writePost(t, dir, "notes.txt", "excluded", base.Add(3*time.Hour))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested"), 0o755))

	source := NewSource(dir, OrderMtime, nil)
	got, err := source.Discover()
	require.NoError(t, err)

	var ids []string
	for _, p := range got {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"newest", "middle", "oldest"}, ids)
	assert.Equal(t, "third", got[0].Raw)
	assert.Equal(t, "first", got[2].Raw)
}

func TestDiscoverCaseInsensitiveSuffix(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-time.Hour).Truncate(time.Second)

	writePost(t, dir, "upper.MD", "content", base)

	source := NewSource(dir, OrderMtime, nil)
	got, err := source.Discover()
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "upper", got[0].ID)
}

func TestDiscoverEqualTimestampsDeterministic(t *testing.T) {
	dir := t.TempDir()
	when := time.Now().Add(-time.Hour).Truncate(time.Second)

	writePost(t, dir, "alpha.md", "a", when)
	writePost(t, dir, "beta.md", "b", when)

	source := NewSource(dir, OrderMtime, nil)
	got, err := source.Discover()
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Oldest-first ties break on name ascending, so the reversed result
	// puts the later name first.
	assert.Equal(t, "beta", got[0].ID)
	assert.Equal(t, "alpha", got[1].ID)
}

func TestDiscoverEmptyDir(t *testing.T) {
	source := NewSource(t.TempDir(), OrderMtime, nil)
	got, err := source.Discover()
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscoverMissingDir(t *testing.T) {
	source := NewSource(filepath.Join(t.TempDir(), "nope"), OrderMtime, nil)
	_, err := source.Discover()
	require.Error(t, err)
	assert.True(t, bberrors.IsCategory(err, bberrors.CategoryPosts))
}

type stubCommitTimes struct {
	times map[string]time.Time
	err   error
}

func (s stubCommitTimes) CommitTimes(paths []string) (map[string]time.Time, error) {
	return s.times, s.err
}

func TestDiscoverGitOrder(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	oldPath := writePost(t, dir, "committed-late.md", "a", base)
	writePost(t, dir, "committed-early.md", "b", base.Add(time.Hour))

	// Commit history says the file with the older mtime was touched last.
	resolver := stubCommitTimes{times: map[string]time.Time{
		oldPath: base.Add(2 * time.Hour),
	}}

	source := NewSource(dir, OrderGit, resolver)
	got, err := source.Discover()
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "committed-late", got[0].ID)
	assert.Equal(t, "committed-early", got[1].ID)
}

func TestDiscoverGitOrderResolverFailure(t *testing.T) {
	dir := t.TempDir()
	base := time.Now().Add(-24 * time.Hour).Truncate(time.Second)

	writePost(t, dir, "old.md", "a", base)
	writePost(t, dir, "new.md", "b", base.Add(time.Hour))

	resolver := stubCommitTimes{err: assert.AnError}

	source := NewSource(dir, OrderGit, resolver)
	got, err := source.Discover()
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Falls back to mtime ordering.
	assert.Equal(t, "new", got[0].ID)
	assert.Equal(t, "old", got[1].ID)
}

func TestIdentifier(t *testing.T) {
	tests := []struct {
		name string
		file string
		want string
	}{
		{"plain stem", "hello.md", "hello"},
		{"uppercase lowered", "Hello.md", "hello"},
		{"dashes preserved", "my-post.md", "my-post"},
		{"uppercase extension", "guide.MD", "guide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Identifier(tt.file))
		})
	}
}

func TestFallbackIdentifier(t *testing.T) {
	tests := []struct {
		name string
		stem string
		want string
	}{
		{"empty stem", "", "post"},
		{"only punctuation", "!!!", "post"},
		{"mixed", "My Post 2024", "my-post-2024"},
		{"non-ascii collapsed", "héllo wörld", "h-llo-w-rld"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fallbackIdentifier(tt.stem))
		})
	}
}

func TestDecodeLossy(t *testing.T) {
	assert.Equal(t, "plain", decodeLossy([]byte("plain")))
	assert.Equal(t, "ok�end", decodeLossy([]byte("ok\xffend")))
}

func TestValidOrderMode(t *testing.T) {
	assert.True(t, ValidOrderMode("mtime"))
	assert.True(t, ValidOrderMode("git"))
	assert.False(t, ValidOrderMode("alphabetical"))
}
