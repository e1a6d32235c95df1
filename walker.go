package main

import (
	"fmt"
	"os"
	"path/filepath"

	gitignore "github.com/monochromegane/go-gitignore"
)

// Entry is a file discovered during traversal. Entries are ephemeral; they
// exist only for the duration of the visit call.
type Entry struct {
	Path string // full path, rooted at the walker's root
	Name string // base name
	Size int64
}

// treeWalker performs a depth-first recursive walk of a directory tree,
// applying the skip policy before descending into a directory and before
// visiting a file. An optional root-level .gitignore is honored as well.
type treeWalker struct {
	root   string
	ignore gitignore.IgnoreMatcher // nil when --no-ignore or no .gitignore
}

// newTreeWalker builds a walker rooted at root. When respectIgnore is set
// and a .gitignore exists at the root, its rules are applied during the walk.
func newTreeWalker(root string, respectIgnore bool) *treeWalker {
	w := &treeWalker{root: root}
	if respectIgnore {
		ignorePath := filepath.Join(root, ".gitignore")
		if _, err := os.Stat(ignorePath); err == nil {
			matcher, err := gitignore.NewGitIgnore(ignorePath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v\n", ignorePath, err)
			} else {
				w.ignore = matcher
			}
		}
	}
	return w
}

// Walk visits every non-skipped file under the root, depth-first, one file
// at a time. A subdirectory is fully traversed before its parent's remaining
// siblings are visited. An unreadable directory aborts only the subtree
// rooted at it; the root itself being unreadable is the only fatal case.
func (w *treeWalker) Walk(visit func(e Entry)) error {
	return w.walkDir(w.root, true, visit)
}

func (w *treeWalker) walkDir(dir string, isRoot bool, visit func(e Entry)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if isRoot {
			return fmt.Errorf("cannot read directory %s: %w", dir, err)
		}
		// Abort only this subtree; siblings already enumerated by the
		// parent call keep going.
		fmt.Fprintf(os.Stderr, "Warning: skipping unreadable directory %s: %v\n", dir, err)
		return nil
	}

	for _, d := range entries {
		path := filepath.Join(dir, d.Name())
		if w.skip(path, d.IsDir()) {
			continue
		}
		if d.IsDir() {
			if err := w.walkDir(path, false, visit); err != nil {
				return err
			}
			continue
		}
		info, err := d.Info()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not stat %s: %v\n", path, err)
			continue
		}
		visit(Entry{Path: path, Name: d.Name(), Size: info.Size()})
	}
	return nil
}

// skip combines the reserved-name policy with the optional .gitignore rules.
// Both are path-only decisions; file content is never consulted.
func (w *treeWalker) skip(path string, isDir bool) bool {
	if isSkippable(path) {
		return true
	}
	// Match relativizes against the gitignore's own directory; it gets the
	// full walked path, not a pre-relativized one.
	if w.ignore != nil && w.ignore.Match(path, isDir) {
		return true
	}
	return false
}
