package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Target
	targetDir string
	noIgnore  bool

	// Summary delivery
	summaryFile     string
	copyToClipboard bool
	pdfReportFile   string

	// Non-interactive task selection
	taskName string

	// Task parameters (flag-driven runs)
	quality     int
	resizeWider bool
	maxWidth    int
	baseURL     string
	disallowCSV string
	allowCSV    string
	siteName    string
	siteDesc    string
	siteAuthor  string
	siteImage   string
)

// version is set via ldflags.
var version = "dev"

var rootCmd = &cobra.Command{
	Use:   "webopt",
	Short: "webopt optimizes a website's source tree in place.",
	Long: `webopt walks a website's source directory and applies file-level
optimizations: WebP image conversion, reference rewriting, CSS/HTML/JS
minification or beautification, lazy-loading and alt attribute injection,
JSON-LD schema markup, sitemap.xml and robots.txt generation.

Run without --task for the interactive menu.`,
	Version:       version,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := os.Stat(targetDir)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("target directory does not exist: %s", targetDir)
		}

		cfg := loadRootConfig(targetDir)
		ctx := newRunContext(targetDir, cfg, noIgnore)
		out := outputOptions{File: summaryFile, Clipboard: copyToClipboard, PDF: pdfReportFile}

		if taskName != "" {
			cmd.SilenceUsage = true // the task exists; failures are not usage errors
			req := requestFromFlags(TaskID(taskName))
			if _, ok := taskDescriptions[req.Task]; !ok || req.Task == TaskExit {
				cmd.SilenceUsage = false
				return fmt.Errorf("unknown task %q", taskName)
			}
			if err := ctx.Run(req); err != nil {
				return err
			}
			deliverSummary(ctx.stats, out)
			return nil
		}

		cmd.SilenceUsage = true
		return runInteractive(ctx, out)
	},
}

// requestFromFlags builds the same TaskRequest record the interactive
// prompts would, but from command-line flags.
func requestFromFlags(task TaskID) TaskRequest {
	return TaskRequest{
		Task:     task,
		Quality:  quality,
		Resize:   resizeWider,
		MaxWidth: maxWidth,
		Disallow: splitPaths(disallowCSV),
		Allow:    splitPaths(allowCSV),
		Site: SiteDefaults{
			Name:        siteName,
			BaseURL:     baseURL,
			Description: siteDesc,
			Author:      siteAuthor,
			Image:       siteImage,
		},
	}
}

func init() {
	rootCmd.Flags().StringVarP(&targetDir, "directory", "d", ".", "Target directory to optimize")
	viper.BindPFlag("directory", rootCmd.Flags().Lookup("directory"))
	rootCmd.Flags().BoolVar(&noIgnore, "no-ignore", false, "Don't respect the root .gitignore")
	viper.BindPFlag("no_ignore", rootCmd.Flags().Lookup("no-ignore"))

	rootCmd.Flags().StringVarP(&summaryFile, "file", "f", "", "Append the run summary to a file")
	rootCmd.Flags().BoolVarP(&copyToClipboard, "clipboard", "c", false, "Copy the run summary to the clipboard")
	rootCmd.Flags().StringVar(&pdfReportFile, "pdf", "", "Write a PDF run report")

	rootCmd.Flags().StringVarP(&taskName, "task", "t", "", "Run a single task non-interactively (convert, convert-advanced, minify-css, minify-html, minify-js, beautify, lazy-load, alt-attributes, sitemap, robots, schema)")

	rootCmd.Flags().IntVarP(&quality, "quality", "q", 0, "WebP quality 1-100 (0 = config default)")
	rootCmd.Flags().BoolVar(&resizeWider, "resize", false, "Downscale images wider than --max-width")
	rootCmd.Flags().IntVar(&maxWidth, "max-width", 0, "Maximum image width in px (0 = config default)")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Site base URL for sitemap/robots/schema")
	rootCmd.Flags().StringVar(&disallowCSV, "disallow", "", "Comma-separated disallow paths for robots.txt")
	rootCmd.Flags().StringVar(&allowCSV, "allow", "", "Comma-separated allow paths for robots.txt")
	rootCmd.Flags().StringVar(&siteName, "site-name", "", "Site name for schema markup")
	rootCmd.Flags().StringVar(&siteDesc, "site-description", "", "Fallback description for schema markup")
	rootCmd.Flags().StringVar(&siteAuthor, "site-author", "", "Fallback author for schema markup")
	rootCmd.Flags().StringVar(&siteImage, "site-image", "", "Fallback image URL for schema markup")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
