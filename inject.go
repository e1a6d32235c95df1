package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// img tags are patched with text-pattern matching rather than a DOM
// round-trip so untouched markup keeps its exact bytes. Known limitation:
// a quoted attribute value containing a literal '>' mis-bounds the tag.
var (
	imgTagRe      = regexp.MustCompile(`(?i)<img\b[^>]*>`)
	loadingAttrRe = regexp.MustCompile(`(?i)\bloading\s*=`)
	altAttrRe     = regexp.MustCompile(`(?i)\balt\s*=`)
)

// injectLazyLoading adds loading="lazy" to every img tag in markup files
// that does not already declare a loading mode. Tags that do are left
// byte-identical, so repeated runs are no-ops.
func injectLazyLoading(walker *treeWalker, stats *Stats) error {
	stats.HTML.Verb = "updated"
	return walker.Walk(func(e Entry) {
		if !isHTMLFile(e.Name) {
			return
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", e.Path, err)
			stats.HTML.recordFailure()
			return
		}

		patched := 0
		updated := imgTagRe.ReplaceAllStringFunc(string(data), func(tag string) string {
			if loadingAttrRe.MatchString(tag) {
				return tag
			}
			patched++
			return insertAttr(tag, `loading="lazy"`)
		})
		if patched == 0 {
			return
		}
		if err := os.WriteFile(e.Path, []byte(updated), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", e.Path, err)
			stats.HTML.recordFailure()
			return
		}
		fmt.Printf("Added lazy loading to %d image(s) in %s\n", patched, e.Path)
		stats.HTML.recordSuccess(int64(len(data)), int64(len(updated)))
		stats.HTML.Items += patched
	})
}

// injectAltAttributes adds a numbered placeholder alt attribute (img-1,
// img-2, ... in document order, reset per file) to every img tag lacking
// one. Existing alt attributes are never overwritten.
func injectAltAttributes(walker *treeWalker, stats *Stats) error {
	return walker.Walk(func(e Entry) {
		if !isHTMLFile(e.Name) {
			return
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", e.Path, err)
			stats.Alt.recordFailure()
			return
		}

		n := 0
		updated := imgTagRe.ReplaceAllStringFunc(string(data), func(tag string) string {
			if altAttrRe.MatchString(tag) {
				return tag
			}
			n++
			return insertAttr(tag, fmt.Sprintf(`alt="img-%d"`, n))
		})
		if n == 0 {
			return
		}
		if err := os.WriteFile(e.Path, []byte(updated), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", e.Path, err)
			stats.Alt.recordFailure()
			return
		}
		fmt.Printf("Added %d alt attribute(s) in %s\n", n, e.Path)
		stats.Alt.recordSuccess(int64(len(data)), int64(len(updated)))
		stats.Alt.Items += n
	})
}

// insertAttr places an attribute just before the tag's closing bracket,
// keeping self-closing syntax intact.
func insertAttr(tag, attr string) string {
	if strings.HasSuffix(tag, "/>") {
		return strings.TrimSuffix(tag, "/>") + " " + attr + "/>"
	}
	return strings.TrimSuffix(tag, ">") + " " + attr + ">"
}
