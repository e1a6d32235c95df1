package main

import (
	"fmt"
	"strings"

	"github.com/tdewolff/minify/v2"
)

// runContext ties one target directory to its config and the per-run
// statistics. The orchestrator owns the Stats instance for the duration of a
// task; operations receive it explicitly, never through package state.
type runContext struct {
	root     string
	cfg      *rootConfig
	noIgnore bool
	stats    *Stats
	minifier *minify.M
}

func newRunContext(root string, cfg *rootConfig, noIgnore bool) *runContext {
	return &runContext{
		root:     root,
		cfg:      cfg,
		noIgnore: noIgnore,
		stats:    &Stats{},
		minifier: newMinifier(cfg),
	}
}

// walker builds a fresh traversal for each pass so that multi-pass tasks
// (convert then rewrite) see a consistent view: the first pass fully
// completes before the second begins.
func (c *runContext) walker() *treeWalker {
	return newTreeWalker(c.root, !c.noIgnore)
}

// Run executes one task. Statistics are reset first, so each task's summary
// stands alone. Per-file failures are counted, never returned; an error here
// means a setup or collaborator failure that aborts the task.
func (c *runContext) Run(req TaskRequest) error {
	c.stats.Reset()

	switch req.Task {
	case TaskConvert, TaskConvertAdvanced:
		// Codec preflight happens before any directory is touched.
		if err := checkCodec(); err != nil {
			return err
		}
		opts := convertOptions{Quality: req.Quality, Resize: req.Resize, MaxWidth: req.MaxWidth}
		if opts.Quality <= 0 {
			opts.Quality = c.cfg.ImageQuality
		}
		if opts.MaxWidth <= 0 {
			opts.MaxWidth = c.cfg.MaxImageWidth
		}
		if err := convertImages(c.root, opts, c.walker(), c.stats); err != nil {
			return err
		}
		if req.Task == TaskConvertAdvanced {
			// All conversions are done; references can now be rewritten.
			return rewriteReferences(c.root, c.walker(), c.stats)
		}
		return nil

	case TaskMinifyCSS:
		return processFiles(c.walker(), isCSSFile, minifyCSS(c.minifier), &c.stats.CSS, "Minified")
	case TaskMinifyHTML:
		return processFiles(c.walker(), isHTMLFile, minifyHTML(c.minifier), &c.stats.HTML, "Minified")
	case TaskMinifyJS:
		return processFiles(c.walker(), isJSFile, minifyJS(c.minifier), &c.stats.JS, "Minified")
	case TaskBeautify:
		return beautifyAll(c.cfg, c.walker(), c.stats)

	case TaskLazyLoad:
		return injectLazyLoading(c.walker(), c.stats)
	case TaskAltAttributes:
		return injectAltAttributes(c.walker(), c.stats)
	case TaskSchema:
		return injectSchema(c.root, req.Site, c.walker(), c.stats)

	case TaskSitemap, TaskRobots:
		// Without a base URL the generated locations would be root-relative
		// fragments, so the task refuses to start.
		if strings.TrimSpace(req.Site.BaseURL) == "" {
			return fmt.Errorf("task %q requires a base URL", req.Task)
		}
		if req.Task == TaskSitemap {
			return buildSitemap(c.root, req.Site.BaseURL, c.walker(), c.stats)
		}
		return buildRobots(c.root, req.Site.BaseURL, req.Disallow, req.Allow, c.stats)

	default:
		return fmt.Errorf("unknown task %q", req.Task)
	}
}
