package main

import (
	"os"
	"path/filepath"
	"strings"
)

// Reserved folder names honored by the skip policy. backupDirName receives
// pre-conversion originals and must never be re-entered by later passes.
const (
	backupDirName     = "img-backup"
	dependencyDirName = "node_modules"
)

// webpExt is the conversion target; it is deliberately absent from
// convertibleExts so repeated runs never re-convert their own output.
const webpExt = ".webp"

var convertibleExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// oldRasterExts lists the extensions (without dot) that reference rewriting
// replaces with webp. Order matters only for readability; matching is a
// single alternation.
var oldRasterExts = []string{"jpg", "jpeg", "png", "gif"}

var textReferenceExts = map[string]bool{
	".html": true,
	".htm":  true,
	".css":  true,
	".js":   true,
	".php":  true,
	".md":   true,
	".txt":  true,
	".xml":  true,
}

// selfName is the running binary's own name; the walker never visits it.
var selfName = filepath.Base(os.Args[0])

// isSkippable reports whether a path must be excluded from traversal.
// The decision is purely path-based: any segment equal to the backup or
// dependency folder name, or a base name equal to the running binary.
func isSkippable(path string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(path), "/") {
		if seg == backupDirName || seg == dependencyDirName {
			return true
		}
	}
	return filepath.Base(path) == selfName
}

// isConvertibleImage reports whether name has a raster extension the WebP
// converter accepts. SVG and WebP itself are excluded by design.
func isConvertibleImage(name string) bool {
	return convertibleExts[strings.ToLower(filepath.Ext(name))]
}

// isTextReferenceFile reports whether name is a text/markup/script/style
// file considered for reference rewriting.
func isTextReferenceFile(name string) bool {
	return textReferenceExts[strings.ToLower(filepath.Ext(name))]
}

func isCSSFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".css") && !strings.HasSuffix(lower, ".min.css")
}

func isJSFile(name string) bool {
	lower := strings.ToLower(name)
	return strings.HasSuffix(lower, ".js") && !strings.HasSuffix(lower, ".min.js")
}

func isHTMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".html" || ext == ".htm"
}
