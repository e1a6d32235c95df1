package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/snabb/sitemap"
)

const (
	sitemapFileName = "sitemap.xml"
	robotsFileName  = "robots.txt"

	sitemapChangeFreq = sitemap.Weekly
	sitemapPriority   = 0.8
)

// buildSitemap enumerates the markup files under root (skip policy honored)
// and writes sitemap.xml at the root, overwriting any existing one. URLs are
// listed in discovery order with a uniform lastmod of the build time.
func buildSitemap(root, baseURL string, walker *treeWalker, stats *Stats) error {
	base := strings.TrimRight(baseURL, "/")
	now := time.Now().UTC()

	sm := sitemap.New()
	urls := 0
	err := walker.Walk(func(e Entry) {
		if !isHTMLFile(e.Name) {
			return
		}
		rel, err := filepath.Rel(root, e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving %s: %v\n", e.Path, err)
			stats.Sitemap.recordFailure()
			return
		}
		sm.Add(&sitemap.URL{
			Loc:        base + "/" + filepath.ToSlash(rel),
			LastMod:    &now,
			ChangeFreq: sitemapChangeFreq,
			Priority:   sitemapPriority,
		})
		urls++
	})
	if err != nil {
		return err
	}

	out, err := os.Create(filepath.Join(root, sitemapFileName))
	if err != nil {
		stats.Sitemap.recordFailure()
		return fmt.Errorf("create sitemap: %w", err)
	}
	defer out.Close()
	if _, err := sm.WriteTo(out); err != nil {
		stats.Sitemap.recordFailure()
		return fmt.Errorf("write sitemap: %w", err)
	}

	fmt.Printf("Wrote %s with %d URL(s)\n", filepath.Join(root, sitemapFileName), urls)
	stats.Sitemap.Done++
	stats.Sitemap.Items = urls
	return nil
}

// buildRobots writes robots.txt at the root: one universal user-agent block,
// disallow lines then allow lines in caller order, and a Sitemap reference
// only when sitemap.xml is already present at the root.
func buildRobots(root, baseURL string, disallow, allow []string, stats *Stats) error {
	var b strings.Builder
	b.WriteString("User-agent: *\n")
	for _, p := range disallow {
		b.WriteString("Disallow: " + p + "\n")
	}
	for _, p := range allow {
		b.WriteString("Allow: " + p + "\n")
	}

	if _, err := os.Stat(filepath.Join(root, sitemapFileName)); err == nil {
		base := strings.TrimRight(baseURL, "/")
		b.WriteString("\nSitemap: " + base + "/" + sitemapFileName + "\n")
	}

	path := filepath.Join(root, robotsFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		stats.Robots.recordFailure()
		return fmt.Errorf("write robots: %w", err)
	}

	fmt.Printf("Wrote %s\n", path)
	stats.Robots.Done++
	return nil
}
