package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// Reference rewriting is deliberate text-pattern matching, the same way the
// transforms that feed it are: an old raster extension counts as a reference
// only when a URL terminator (query, fragment, quote, closing paren,
// whitespace or end of string) follows it, so "jpginfo.html" is left alone.
var (
	rasterRefRe = regexp.MustCompile(`(?i)\.(jpe?g|png|gif)([?#"'` + "`" + `)\s]|$)`)

	// srcset entries carry a width/density descriptor after the URL; the
	// descriptor token must survive the rewrite.
	srcsetRefRe = regexp.MustCompile(`(?i)([^\s",'>=]+)\.(jpe?g|png|gif)(\s+\d+(?:\.\d+)?[wx])`)
)

// rewriteReferences walks the tree and updates raster-image references in
// text files to point at the converted WebP siblings. Files whose content
// does not change are not rewritten, so their mtimes stay put. Results land
// under the HTML family with a rewrite verb, since stylesheets and scripts
// get rewritten too.
func rewriteReferences(root string, walker *treeWalker, stats *Stats) error {
	stats.HTML.Verb = "rewritten"
	return walker.Walk(func(e Entry) {
		if !isTextReferenceFile(e.Name) {
			return
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", e.Path, err)
			stats.HTML.recordFailure()
			return
		}

		updated := rewriteRasterRefs(string(data))
		if updated == string(data) {
			return // nothing referenced the old extensions
		}
		if err := os.WriteFile(e.Path, []byte(updated), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", e.Path, err)
			stats.HTML.recordFailure()
			return
		}
		fmt.Printf("Rewrote image references in %s\n", e.Path)
		stats.HTML.recordSuccess(int64(len(data)), int64(len(updated)))
	})
}

// rewriteRasterRefs replaces old raster extensions with .webp. The srcset
// pass runs first when responsive-image syntax is present; the general pass
// then covers plain src/url/href references. Repeated application is a
// no-op because .webp is never an input extension.
func rewriteRasterRefs(content string) string {
	if strings.Contains(strings.ToLower(content), "srcset") {
		content = srcsetRefRe.ReplaceAllString(content, "${1}"+webpExt+"${3}")
	}
	return rasterRefRe.ReplaceAllString(content, webpExt+"${2}")
}
