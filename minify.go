package main

import (
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/aymerick/douceur/parser"
	"github.com/ditashi/jsbeautifier-go/jsbeautifier"
	"github.com/tdewolff/minify/v2"
	mincss "github.com/tdewolff/minify/v2/css"
	minhtml "github.com/tdewolff/minify/v2/html"
	minjs "github.com/tdewolff/minify/v2/js"
	"github.com/yosssi/gohtml"
)

// transformFunc takes file content and returns the transformed content.
// Minifiers and beautifiers are interchangeable behind this signature.
type transformFunc func(content string) (string, error)

// newMinifier builds the shared tdewolff minifier with the three media types
// the tool cares about registered. HTML behavior is tunable from the root
// config.
func newMinifier(cfg *rootConfig) *minify.M {
	m := minify.New()
	m.AddFunc("text/css", mincss.Minify)
	m.Add("text/html", &minhtml.Minifier{
		KeepDocumentTags: cfg.HTMLKeepDocumentTags,
		KeepComments:     cfg.HTMLKeepComments,
		KeepEndTags:      true,
	})
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), minjs.Minify)
	return m
}

func minifyCSS(m *minify.M) transformFunc {
	return func(content string) (string, error) {
		return m.String("text/css", content)
	}
}

func minifyHTML(m *minify.M) transformFunc {
	return func(content string) (string, error) {
		return m.String("text/html", content)
	}
}

func minifyJS(m *minify.M) transformFunc {
	return func(content string) (string, error) {
		return m.String("application/javascript", content)
	}
}

func beautifyCSS(content string) (string, error) {
	sheet, err := parser.Parse(content)
	if err != nil {
		return "", fmt.Errorf("parse stylesheet: %w", err)
	}
	return sheet.String(), nil
}

func beautifyHTML(content string) (string, error) {
	return gohtml.Format(content), nil
}

func beautifyJS(indentSize int) transformFunc {
	return func(content string) (string, error) {
		options := jsbeautifier.DefaultOptions()
		options["indent_size"] = indentSize
		return jsbeautifier.Beautify(&content, options)
	}
}

// processFiles is the shared read -> transform -> measure -> write loop for
// every text transform. match selects the files, transform produces the new
// content. A transform error is a per-file failure; processing continues
// with the next file.
func processFiles(walker *treeWalker, match func(name string) bool, transform transformFunc, family *Family, verb string) error {
	family.Verb = strings.ToLower(verb)
	return walker.Walk(func(e Entry) {
		if !match(e.Name) {
			return
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", e.Path, err)
			family.recordFailure()
			return
		}
		result, err := transform(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error %s %s: %v\n", verb, e.Path, err)
			family.recordFailure()
			return
		}
		if err := os.WriteFile(e.Path, []byte(result), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", e.Path, err)
			family.recordFailure()
			return
		}
		fmt.Printf("%s %s (%d -> %d bytes)\n", verb, e.Path, len(data), len(result))
		family.recordSuccess(int64(len(data)), int64(len(result)))
	})
}

// beautifyAll runs the three beautifiers over one walk, dispatching each
// file by family. Already-minified names (*.min.css, *.min.js) stay minified.
func beautifyAll(cfg *rootConfig, walker *treeWalker, stats *Stats) error {
	js := beautifyJS(cfg.JSIndentSize)
	stats.CSS.Verb = "beautified"
	stats.HTML.Verb = "beautified"
	stats.JS.Verb = "beautified"
	return walker.Walk(func(e Entry) {
		var transform transformFunc
		var family *Family
		switch {
		case isCSSFile(e.Name):
			transform, family = beautifyCSS, &stats.CSS
		case isHTMLFile(e.Name):
			transform, family = beautifyHTML, &stats.HTML
		case isJSFile(e.Name):
			transform, family = js, &stats.JS
		default:
			return
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", e.Path, err)
			family.recordFailure()
			return
		}
		result, err := transform(string(data))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error beautifying %s: %v\n", e.Path, err)
			family.recordFailure()
			return
		}
		if err := os.WriteFile(e.Path, []byte(result), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", e.Path, err)
			family.recordFailure()
			return
		}
		fmt.Printf("Beautified %s (%d -> %d bytes)\n", e.Path, len(data), len(result))
		family.recordSuccess(int64(len(data)), int64(len(result)))
	})
}
