// Package posts discovers markdown blog posts and yields them in publish
// order, newest first.
package posts

import (
	"time"
)

// Post represents one discovered blog post.
type Post struct {
	ID      string    // anchor name and TOC label, slugified file stem
	Path    string    // absolute path to the source file
	Name    string    // file name including extension
	Raw     string    // file contents, UTF-8 with invalid sequences replaced
	ModTime time.Time // timestamp used for ordering
}

// OrderMode selects where post timestamps come from.
type OrderMode string

const (
	// OrderMtime orders posts by file modification time.
	OrderMtime OrderMode = "mtime"

	// OrderGit orders posts by the time of the last commit touching each
	// file, falling back to mtime for files without history.
	OrderGit OrderMode = "git"
)

// ValidOrderMode reports whether s names a supported order mode.
func ValidOrderMode(s string) bool {
	switch OrderMode(s) {
	case OrderMtime, OrderGit:
		return true
	}
	return false
}

// CommitTimes resolves per-file commit timestamps for OrderGit. Keys of the
// returned map are the absolute paths passed in; files with no history are
// simply absent.
type CommitTimes interface {
	CommitTimes(paths []string) (map[string]time.Time, error)
}
