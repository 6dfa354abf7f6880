package posts

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/encoding/unicode"

	bberrors "github.com/mkarlsen/blogbuilder/internal/errors"
	"github.com/mkarlsen/blogbuilder/internal/logfields"
)

// Source discovers posts in a single directory, non-recursive.
type Source struct {
	dir         string
	order       OrderMode
	commitTimes CommitTimes
}

// NewSource creates a post source for dir. commitTimes may be nil; it is only
// consulted in OrderGit mode.
func NewSource(dir string, order OrderMode, commitTimes CommitTimes) *Source {
	if order == "" {
		order = OrderMtime
	}
	return &Source{
		dir:         dir,
		order:       order,
		commitTimes: commitTimes,
	}
}

// Dir returns the posts directory.
func (s *Source) Dir() string {
	return s.dir
}

// Discover reads the posts directory and returns posts newest first.
//
// Files are selected by a .md suffix (case-insensitive). Names starting with
// an underscore are reserved for drafts and partials and are excluded, as are
// dotfiles. Underlying discovery order is oldest first; the returned slice is
// the reverse of that, so the most recent post comes first.
func (s *Source) Discover() ([]Post, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, bberrors.PostsDirMissing(s.dir)
		}
		return nil, bberrors.PostsDirUnreadable(err, s.dir)
	}

	var found []Post
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if strings.HasPrefix(name, "_") || strings.HasPrefix(name, ".") {
			continue
		}
		if !strings.EqualFold(filepath.Ext(name), ".md") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			return nil, fmt.Errorf("stat post %s: %w", name, err)
		}

		path := filepath.Join(s.dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read post %s: %w", name, err)
		}

		post := Post{
			ID:      Identifier(name),
			Path:    path,
			Name:    name,
			Raw:     decodeLossy(data),
			ModTime: info.ModTime(),
		}
		found = append(found, post)

		slog.Debug("Discovered post",
			logfields.File(name),
			logfields.Post(post.ID))
	}

	if s.order == OrderGit {
		s.applyCommitTimes(found)
	}

	sortOldestFirst(found)
	reverse(found)

	slog.Info("Posts discovered",
		logfields.Path(s.dir),
		logfields.Count(len(found)),
		slog.String("order", string(s.order)))

	return found, nil
}

// applyCommitTimes overrides ModTime with git commit times where available.
// Resolver failures degrade to mtime ordering with a warning.
func (s *Source) applyCommitTimes(found []Post) {
	if s.commitTimes == nil {
		slog.Warn("Git ordering requested but no commit time resolver available, using mtime")
		return
	}

	paths := make([]string, len(found))
	for i := range found {
		paths[i] = found[i].Path
	}

	times, err := s.commitTimes.CommitTimes(paths)
	if err != nil {
		slog.Warn("Commit time lookup failed, using mtime", logfields.Error(err))
		return
	}

	for i := range found {
		if t, ok := times[found[i].Path]; ok {
			found[i].ModTime = t
		}
	}
}

func sortOldestFirst(posts []Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].ModTime.Equal(posts[j].ModTime) {
			return posts[i].Name < posts[j].Name
		}
		return posts[i].ModTime.Before(posts[j].ModTime)
	})
}

func reverse(posts []Post) {
	for i, j := 0, len(posts)-1; i < j; i, j = i+1, j-1 {
		posts[i], posts[j] = posts[j], posts[i]
	}
}

// Identifier derives the anchor identifier from a post file name. The stem is
// slug-normalized; an empty result falls back to "post".
func Identifier(fileName string) string {
	stem := strings.TrimSuffix(fileName, filepath.Ext(fileName))

	id, err := slug.Normalize(stem)
	if err != nil || id == "" {
		id = fallbackIdentifier(stem)
	}
	return id
}

// fallbackIdentifier keeps word characters and dashes, collapsing everything
// else into single dashes.
func fallbackIdentifier(stem string) string {
	var b strings.Builder
	lastDash := false
	for _, r := range strings.ToLower(stem) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash && b.Len() > 0 {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	id := strings.Trim(b.String(), "-")
	if id == "" {
		return "post"
	}
	return id
}

// decodeLossy decodes data as UTF-8, replacing invalid sequences with U+FFFD
// instead of failing.
func decodeLossy(data []byte) string {
	decoded, err := unicode.UTF8.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), string(utf8.RuneError))
	}
	return string(decoded)
}
