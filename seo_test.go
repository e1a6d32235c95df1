package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSitemap(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "index.html", "<html></html>")
	writeFixture(t, root, filepath.Join("blog", "post.html"), "<html></html>")
	writeFixture(t, root, filepath.Join(backupDirName, "old.html"), "<html></html>")
	writeFixture(t, root, "style.css", "body{}")

	stats := &Stats{}
	// Trailing slash on the base URL must not produce double slashes.
	require.NoError(t, buildSitemap(root, "https://x.test/", newTreeWalker(root, false), stats))

	got := readFixture(t, root, sitemapFileName)
	assert.Equal(t, 2, strings.Count(got, "<url>"))
	assert.Contains(t, got, "<loc>https://x.test/index.html</loc>")
	assert.Contains(t, got, "<loc>https://x.test/blog/post.html</loc>")
	assert.NotContains(t, got, "old.html")
	assert.Contains(t, got, "<changefreq>weekly</changefreq>")
	assert.Contains(t, got, "<priority>0.8</priority>")

	assert.Equal(t, 1, stats.Sitemap.Done)
	assert.Equal(t, 2, stats.Sitemap.Items)
}

func TestBuildSitemapOverwrites(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, sitemapFileName, "stale content")
	writeFixture(t, root, "page.html", "<html></html>")

	require.NoError(t, buildSitemap(root, "https://x.test", newTreeWalker(root, false), &Stats{}))

	got := readFixture(t, root, sitemapFileName)
	assert.NotContains(t, got, "stale")
	assert.Contains(t, got, "https://x.test/page.html")
}

func TestBuildRobotsWithSitemap(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, sitemapFileName, "<urlset/>")

	stats := &Stats{}
	require.NoError(t, buildRobots(root, "https://x.test/", []string{"/admin"}, []string{"/public"}, stats))

	got := readFixture(t, root, robotsFileName)
	assert.Contains(t, got, "User-agent: *\n")
	assert.Contains(t, got, "Disallow: /admin\n")
	assert.Contains(t, got, "Allow: /public\n")
	assert.Contains(t, got, "Sitemap: https://x.test/sitemap.xml")
	// Disallow lines come before allow lines.
	assert.Less(t, strings.Index(got, "Disallow:"), strings.Index(got, "Allow:"))
	assert.Equal(t, 1, stats.Robots.Done)
}

func TestBuildRobotsWithoutSitemap(t *testing.T) {
	root := t.TempDir()

	require.NoError(t, buildRobots(root, "https://x.test", []string{"/admin"}, nil, &Stats{}))

	got := readFixture(t, root, robotsFileName)
	assert.NotContains(t, got, "Sitemap:")
}

func TestBuildRobotsOverwrites(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, robotsFileName, "User-agent: oldbot\nDisallow: /\n")

	require.NoError(t, buildRobots(root, "https://x.test", nil, nil, &Stats{}))

	got := readFixture(t, root, robotsFileName)
	assert.NotContains(t, got, "oldbot")
	assert.Equal(t, "User-agent: *\n", got)
}

func TestSitemapDiscoveryOrder(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "a.html", "<html></html>")
	writeFixture(t, root, filepath.Join("b", "inner.html"), "<html></html>")
	writeFixture(t, root, "c.html", "<html></html>")

	require.NoError(t, buildSitemap(root, "https://x.test", newTreeWalker(root, false), &Stats{}))

	got := readFixture(t, root, sitemapFileName)
	// Depth-first discovery order, not sorted URLs.
	ia := strings.Index(got, "https://x.test/a.html")
	ib := strings.Index(got, "https://x.test/b/inner.html")
	ic := strings.Index(got, "https://x.test/c.html")
	require.True(t, ia >= 0 && ib >= 0 && ic >= 0)
	assert.Less(t, ia, ib)
	assert.Less(t, ib, ic)

	// os.Stat sanity: the file really is at the root.
	_, err := os.Stat(filepath.Join(root, sitemapFileName))
	assert.NoError(t, err)
}
