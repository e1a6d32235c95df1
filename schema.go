package main

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

const jsonLDMarker = "application/ld+json"

var (
	headCloseRe = regexp.MustCompile(`(?i)</head>`)
	priceRe     = regexp.MustCompile(`[$€£]\s?\d+(?:[.,]\d{2})?`)
)

// pageMeta is the best-effort metadata pulled out of a page, with the
// caller-supplied site defaults filled in wherever the page is silent.
type pageMeta struct {
	Title       string
	Description string
	Author      string
	Published   string
	Image       string
	Price       string
}

// injectSchema walks the markup files and injects exactly one JSON-LD block
// per page, immediately before the closing head tag. Pages that already
// carry a JSON-LD block are left byte-identical.
func injectSchema(root string, site SiteDefaults, walker *treeWalker, stats *Stats) error {
	return walker.Walk(func(e Entry) {
		if !isHTMLFile(e.Name) {
			return
		}
		data, err := os.ReadFile(e.Path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", e.Path, err)
			stats.Schema.recordFailure()
			return
		}
		content := string(data)

		// Idempotence guard: one schema block per page, ever.
		if strings.Contains(content, jsonLDMarker) {
			return
		}

		loc := headCloseRe.FindStringIndex(content)
		if loc == nil {
			fmt.Fprintf(os.Stderr, "Error injecting schema into %s: no closing head tag\n", e.Path)
			stats.Schema.recordFailure()
			return
		}

		meta := extractPageMeta(content, site)
		schema := classifyPage(e.Path, meta, site)

		blob, err := json.MarshalIndent(schema, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error injecting schema into %s: %v\n", e.Path, err)
			stats.Schema.recordFailure()
			return
		}
		block := "<script type=\"application/ld+json\">\n" + string(blob) + "\n</script>\n"
		updated := content[:loc[0]] + block + content[loc[0]:]

		if err := os.WriteFile(e.Path, []byte(updated), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing %s: %v\n", e.Path, err)
			stats.Schema.recordFailure()
			return
		}
		fmt.Printf("Injected %s schema into %s\n", schema["@type"], e.Path)
		stats.Schema.recordSuccess(int64(len(data)), int64(len(updated)))
	})
}

// classifyPage picks the schema for a page by filename/folder heuristics.
// Each check runs unconditionally and overwrites the candidate, so a page
// matching several heuristics keeps only the last-evaluated match. That
// order (website, blog, organization, product) mirrors the behavior this
// tool always had; it is intentional, not layering.
func classifyPage(path string, meta pageMeta, site SiteDefaults) map[string]any {
	lower := strings.ToLower(path)

	schema := websiteSchema(meta, site)
	if strings.Contains(lower, "blog") || strings.Contains(lower, "post") {
		schema = articleSchema(meta, site)
	}
	if strings.Contains(lower, "about") || strings.Contains(lower, "contact") {
		schema = organizationSchema(meta, site)
	}
	if (strings.Contains(lower, "product") || strings.Contains(lower, "shop")) && meta.Price != "" {
		schema = productSchema(meta, site)
	}
	return schema
}

func websiteSchema(meta pageMeta, site SiteDefaults) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"name":        firstNonEmpty(meta.Title, site.Name),
		"url":         site.BaseURL,
		"description": meta.Description,
	}
}

func articleSchema(meta pageMeta, site SiteDefaults) map[string]any {
	return map[string]any{
		"@context":      "https://schema.org",
		"@type":         "Article",
		"headline":      firstNonEmpty(meta.Title, site.Name),
		"description":   meta.Description,
		"image":         meta.Image,
		"datePublished": meta.Published,
		"author": map[string]any{
			"@type": "Person",
			"name":  meta.Author,
		},
		"publisher": map[string]any{
			"@type": "Organization",
			"name":  site.Name,
		},
	}
}

func organizationSchema(meta pageMeta, site SiteDefaults) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Organization",
		"name":        firstNonEmpty(site.Name, meta.Title),
		"url":         site.BaseURL,
		"logo":        meta.Image,
		"description": meta.Description,
	}
}

func productSchema(meta pageMeta, site SiteDefaults) map[string]any {
	return map[string]any{
		"@context":    "https://schema.org",
		"@type":       "Product",
		"name":        firstNonEmpty(meta.Title, site.Name),
		"description": meta.Description,
		"image":       meta.Image,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         strings.TrimLeft(meta.Price, "$€£ "),
			"priceCurrency": currencyOf(meta.Price),
		},
	}
}

// extractPageMeta parses the page read-only with goquery and falls back to
// the site defaults for anything the page does not declare. The original
// bytes are never reserialized from this document.
func extractPageMeta(content string, site SiteDefaults) pageMeta {
	meta := pageMeta{
		Title:       site.Name,
		Description: site.Description,
		Author:      site.Author,
		Image:       site.Image,
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return meta
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		meta.Title = title
	}
	if desc, ok := doc.Find(`meta[name="description"]`).Attr("content"); ok && desc != "" {
		meta.Description = desc
	}
	if author, ok := doc.Find(`meta[name="author"]`).Attr("content"); ok && author != "" {
		meta.Author = author
	}
	if published, ok := doc.Find(`meta[property="article:published_time"]`).Attr("content"); ok && published != "" {
		meta.Published = published
	} else if dt, ok := doc.Find("time[datetime]").Attr("datetime"); ok && dt != "" {
		meta.Published = dt
	}
	if img, ok := doc.Find(`meta[property="og:image"]`).Attr("content"); ok && img != "" {
		meta.Image = img
	}

	if price, ok := doc.Find(`[itemprop="price"]`).Attr("content"); ok && price != "" {
		meta.Price = price
	} else if tok := priceRe.FindString(content); tok != "" {
		meta.Price = tok
	}
	return meta
}

func currencyOf(price string) string {
	switch {
	case strings.HasPrefix(price, "€"):
		return "EUR"
	case strings.HasPrefix(price, "£"):
		return "GBP"
	default:
		return "USD"
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
