package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *rootConfig {
	return &rootConfig{
		ImageQuality:         80,
		MaxImageWidth:        1920,
		HTMLKeepDocumentTags: true,
		JSIndentSize:         4,
	}
}

func TestMinifyCSSTransform(t *testing.T) {
	m := newMinifier(testConfig())
	out, err := minifyCSS(m)("body {\n  color: red;\n}\n")
	require.NoError(t, err)
	assert.Equal(t, "body{color:red}", out)
}

func TestMinifyHTMLTransform(t *testing.T) {
	m := newMinifier(testConfig())
	out, err := minifyHTML(m)("<html>\n  <body>\n    <p>hi</p>\n  </body>\n</html>\n")
	require.NoError(t, err)
	assert.Contains(t, out, "<p>hi")
	assert.Less(t, len(out), len("<html>\n  <body>\n    <p>hi</p>\n  </body>\n</html>\n"))
}

func TestMinifyJSTransform(t *testing.T) {
	m := newMinifier(testConfig())
	out, err := minifyJS(m)("var x = 1;\nvar y = 2;\n")
	require.NoError(t, err)
	assert.NotContains(t, out, "\n\n")
	assert.Less(t, len(out), len("var x = 1;\nvar y = 2;\n"))
}

func TestBeautifyCSSTransform(t *testing.T) {
	out, err := beautifyCSS("body{color:red}")
	require.NoError(t, err)
	assert.Contains(t, out, "color: red")
}

func TestBeautifyHTMLTransform(t *testing.T) {
	out, err := beautifyHTML("<html><body><p>hi</p></body></html>")
	require.NoError(t, err)
	assert.Contains(t, out, "<p>")
	assert.Contains(t, out, "\n")
}

func TestProcessFilesFailureIsolation(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "bad.css", "broken")
	writeFixture(t, root, "good.css", "fine")
	writeFixture(t, root, "skip.min.css", "already minified")
	writeFixture(t, root, "ignored.html", "<html></html>")

	// One file fails its transform; its siblings still complete.
	transform := func(content string) (string, error) {
		if strings.Contains(content, "broken") {
			return "", errors.New("syntax error")
		}
		return strings.ToUpper(content), nil
	}

	stats := &Stats{}
	err := processFiles(newTreeWalker(root, false), isCSSFile, transform, &stats.CSS, "Processed")
	require.NoError(t, err)

	assert.Equal(t, 1, stats.CSS.Done)
	assert.Equal(t, 1, stats.CSS.Failed)
	assert.Equal(t, "FINE", readFixture(t, root, "good.css"))
	assert.Equal(t, "broken", readFixture(t, root, "bad.css"), "failed files stay untouched")
	assert.Equal(t, "already minified", readFixture(t, root, "skip.min.css"))
	assert.Equal(t, "<html></html>", readFixture(t, root, "ignored.html"))
}

func TestProcessFilesMeasuresBytes(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "style.css", "body {  color:  red;  }")

	stats := &Stats{}
	m := newMinifier(testConfig())
	require.NoError(t, processFiles(newTreeWalker(root, false), isCSSFile, minifyCSS(m), &stats.CSS, "Minified"))

	out := readFixture(t, root, "style.css")
	assert.Equal(t, int64(len("body {  color:  red;  }")), stats.CSS.BytesBefore)
	assert.Equal(t, int64(len(out)), stats.CSS.BytesAfter)
	saved, _ := calculateSavings(stats.CSS.BytesBefore, stats.CSS.BytesAfter)
	assert.Positive(t, saved)
	// The summary line carries the pass's own verb.
	assert.Contains(t, stats.SummaryText(), "CSS: 1 minified")
}

func TestBeautifyAllDispatch(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "style.css", "body{color:red}")
	writeFixture(t, root, "page.html", "<html><body><p>x</p></body></html>")
	writeFixture(t, root, "app.js", "var x=1;function f(){return x}")

	stats := &Stats{}
	require.NoError(t, beautifyAll(testConfig(), newTreeWalker(root, false), stats))

	assert.Equal(t, 1, stats.CSS.Done)
	assert.Equal(t, 1, stats.HTML.Done)
	assert.Equal(t, 1, stats.JS.Done)
	assert.Contains(t, readFixture(t, root, "style.css"), "color: red")
	assert.Contains(t, stats.SummaryText(), "HTML: 1 beautified")
}
