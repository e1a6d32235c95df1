package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	fuzzyfinder "github.com/ktr0731/go-fuzzyfinder"
	"github.com/manifoldco/promptui"
)

// runInteractive loops task selection and execution until the user picks
// exit or aborts. Task execution errors (setup/collaborator failures) end
// the session; per-file failures never reach this level.
func runInteractive(ctx *runContext, out outputOptions) error {
	for {
		task, err := selectTask()
		if err != nil {
			if errors.Is(err, fuzzyfinder.ErrAbort) {
				return nil
			}
			return fmt.Errorf("task selection: %w", err)
		}
		if task == TaskExit {
			return nil
		}

		req, err := collectParams(task, ctx.cfg)
		if err != nil {
			if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) {
				fmt.Println("Cancelled.")
				continue
			}
			return err
		}

		if err := ctx.Run(req); err != nil {
			return err
		}
		deliverSummary(ctx.stats, out)
	}
}

// selectTask shows the task menu in a fuzzy finder with a description
// preview, the way a picker beats scrolling a numbered list.
func selectTask() (TaskID, error) {
	idx, err := fuzzyfinder.Find(
		allTasks,
		func(i int) string {
			return string(allTasks[i])
		},
		fuzzyfinder.WithPreviewWindow(func(i, w, h int) string {
			if i == -1 {
				return "Pick a task. Esc to quit."
			}
			return taskDescriptions[allTasks[i]]
		}),
	)
	if err != nil {
		return "", err
	}
	return allTasks[idx], nil
}

// collectParams prompts for the parameters a task needs and returns the
// populated request. Config values preseed the prompt defaults.
func collectParams(task TaskID, cfg *rootConfig) (TaskRequest, error) {
	req := TaskRequest{Task: task}
	var err error

	switch task {
	case TaskConvert, TaskConvertAdvanced:
		req.Quality, err = promptInt("WebP quality (1-100)", cfg.ImageQuality, 1, 100)
		if err != nil {
			return req, err
		}
		req.Resize, err = promptYesNo("Resize images wider than a maximum width?", cfg.ResizeImages)
		if err != nil {
			return req, err
		}
		if req.Resize {
			req.MaxWidth, err = promptInt("Maximum width (px)", cfg.MaxImageWidth, 1, 100000)
			if err != nil {
				return req, err
			}
		}

	case TaskSitemap:
		req.Site.BaseURL, err = promptRequired("Site base URL (e.g. https://example.com)")
		if err != nil {
			return req, err
		}

	case TaskRobots:
		req.Site.BaseURL, err = promptRequired("Site base URL (e.g. https://example.com)")
		if err != nil {
			return req, err
		}
		var disallow, allow string
		disallow, err = promptOptional("Disallow paths (comma-separated)", "/admin,/private")
		if err != nil {
			return req, err
		}
		allow, err = promptOptional("Allow paths (comma-separated)", "")
		if err != nil {
			return req, err
		}
		req.Disallow = splitPaths(disallow)
		req.Allow = splitPaths(allow)

	case TaskSchema:
		req.Site.Name, err = promptRequired("Site name")
		if err != nil {
			return req, err
		}
		req.Site.BaseURL, err = promptRequired("Site base URL")
		if err != nil {
			return req, err
		}
		req.Site.Description, err = promptOptional("Default description", "")
		if err != nil {
			return req, err
		}
		req.Site.Author, err = promptOptional("Default author", "")
		if err != nil {
			return req, err
		}
		req.Site.Image, err = promptOptional("Default image URL", "")
		if err != nil {
			return req, err
		}
	}

	return req, nil
}

func promptInt(label string, def, min, max int) (int, error) {
	p := promptui.Prompt{
		Label:   label,
		Default: strconv.Itoa(def),
		Validate: func(s string) error {
			n, err := strconv.Atoi(strings.TrimSpace(s))
			if err != nil {
				return fmt.Errorf("enter a number")
			}
			if n < min || n > max {
				return fmt.Errorf("must be between %d and %d", min, max)
			}
			return nil
		},
	}
	s, err := p.Run()
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(strings.TrimSpace(s))
}

func promptYesNo(label string, def bool) (bool, error) {
	d := "n"
	if def {
		d = "y"
	}
	p := promptui.Prompt{
		Label:   label + " (y/n)",
		Default: d,
		Validate: func(s string) error {
			switch strings.ToLower(strings.TrimSpace(s)) {
			case "y", "yes", "n", "no":
				return nil
			}
			return fmt.Errorf("answer y or n")
		},
	}
	s, err := p.Run()
	if err != nil {
		return false, err
	}
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "y" || s == "yes", nil
}

func promptRequired(label string) (string, error) {
	p := promptui.Prompt{
		Label: label,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("value required")
			}
			return nil
		},
	}
	s, err := p.Run()
	return strings.TrimSpace(s), err
}

func promptOptional(label, def string) (string, error) {
	p := promptui.Prompt{Label: label, Default: def}
	s, err := p.Run()
	return strings.TrimSpace(s), err
}

// splitPaths parses a comma-separated path list, dropping empty entries.
func splitPaths(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
