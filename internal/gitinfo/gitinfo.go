// Package gitinfo resolves per-file commit timestamps from the repository
// enclosing the posts directory.
package gitinfo

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

var errStop = errors.New("stop iteration")

// maxCommits bounds the history walk. Files older than this many commits
// keep their mtime ordering.
const maxCommits = 500

// Resolver maps file paths to the time of the last commit touching them.
type Resolver struct {
	repo *git.Repository
	root string
}

// NewResolver opens the repository containing dir, searching parent
// directories for the .git folder.
func NewResolver(dir string) (*Resolver, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve posts dir: %w", err)
	}

	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return nil, fmt.Errorf("open repository for %s: %w", dir, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("repository worktree: %w", err)
	}

	return &Resolver{
		repo: repo,
		root: wt.Filesystem.Root(),
	}, nil
}

// CommitTimes walks the log from HEAD once and returns, for each given path,
// the author time of the newest commit touching it. Paths outside the
// repository or without history are absent from the result. The walk stops
// as soon as every path is resolved or maxCommits is reached.
func (r *Resolver) CommitTimes(paths []string) (map[string]time.Time, error) {
	wanted := make(map[string]string, len(paths))
	for _, p := range paths {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		rel, err := filepath.Rel(r.root, abs)
		if err != nil || strings.HasPrefix(rel, "..") {
			continue
		}
		wanted[filepath.ToSlash(rel)] = p
	}

	result := make(map[string]time.Time, len(wanted))
	if len(wanted) == 0 {
		return result, nil
	}

	head, err := r.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("repository head: %w", err)
	}

	cIter, err := r.repo.Log(&git.LogOptions{From: head.Hash()})
	if err != nil {
		return nil, fmt.Errorf("repository log: %w", err)
	}
	defer cIter.Close()

	count := 0
	err = cIter.ForEach(func(c *object.Commit) error {
		if count >= maxCommits || len(wanted) == 0 {
			return errStop
		}
		count++

		stats, sErr := c.Stats()
		if sErr != nil {
			return nil // Skip this commit on error
		}

		for _, stat := range stats {
			orig, ok := wanted[stat.Name]
			if !ok {
				continue
			}
			// Log runs newest first, so the first hit is the latest touch.
			result[orig] = c.Author.When
			delete(wanted, stat.Name)
		}
		return nil
	})
	if err != nil && !errors.Is(err, errStop) {
		return nil, fmt.Errorf("walk history: %w", err)
	}

	return result, nil
}
