package main

// TaskID identifies one of the transform tasks the tool can run.
type TaskID string

const (
	TaskConvert         TaskID = "convert"
	TaskConvertAdvanced TaskID = "convert-advanced"
	TaskMinifyCSS       TaskID = "minify-css"
	TaskMinifyHTML      TaskID = "minify-html"
	TaskMinifyJS        TaskID = "minify-js"
	TaskBeautify        TaskID = "beautify"
	TaskLazyLoad        TaskID = "lazy-load"
	TaskAltAttributes   TaskID = "alt-attributes"
	TaskSitemap         TaskID = "sitemap"
	TaskRobots          TaskID = "robots"
	TaskSchema          TaskID = "schema"
	TaskExit            TaskID = "exit"
)

// allTasks is the menu order presented to the user.
var allTasks = []TaskID{
	TaskConvert,
	TaskConvertAdvanced,
	TaskMinifyCSS,
	TaskMinifyHTML,
	TaskMinifyJS,
	TaskBeautify,
	TaskLazyLoad,
	TaskAltAttributes,
	TaskSitemap,
	TaskRobots,
	TaskSchema,
	TaskExit,
}

// taskDescriptions maps task ids to the one-line blurb shown in the menu.
var taskDescriptions = map[TaskID]string{
	TaskConvert:         "Convert JPEG/PNG/GIF images to WebP",
	TaskConvertAdvanced: "Convert images to WebP and rewrite references in text files",
	TaskMinifyCSS:       "Minify stylesheets (skips *.min.css)",
	TaskMinifyHTML:      "Minify HTML files",
	TaskMinifyJS:        "Minify scripts (skips *.min.js)",
	TaskBeautify:        "Beautify CSS, HTML and JS files",
	TaskLazyLoad:        "Add loading=\"lazy\" to img tags",
	TaskAltAttributes:   "Add placeholder alt attributes to img tags",
	TaskSitemap:         "Generate sitemap.xml at the target root",
	TaskRobots:          "Generate robots.txt at the target root",
	TaskSchema:          "Inject JSON-LD schema markup into HTML pages",
	TaskExit:            "Quit",
}

// SiteDefaults carries the site base URL (sitemap/robots) and the fallback
// metadata used when a page does not declare its own (schema injection).
type SiteDefaults struct {
	Name        string
	BaseURL     string
	Description string
	Author      string
	Image       string
}

// TaskRequest is the plain parameter record handed to the orchestrator.
// Any front end (interactive prompts, flags, or another program) can build
// one; the orchestrator does not care where it came from.
type TaskRequest struct {
	Task TaskID

	// Image conversion
	Quality  int  // 1-100
	Resize   bool // downscale images wider than MaxWidth
	MaxWidth int

	// Robots policy
	Disallow []string
	Allow    []string

	// Sitemap / schema
	Site SiteDefaults
}
