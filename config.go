package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// configFileName is the optional per-site config at the target root.
const configFileName = "webopt.json"

// rootConfig supplies defaults for anything the user does not answer at the
// prompt. Values come from built-in defaults, then webopt.json at the target
// root, then WEBOPT_* environment variables, in that order.
type rootConfig struct {
	ImageQuality  int  `mapstructure:"image_quality"`
	ResizeImages  bool `mapstructure:"resize_images"`
	MaxImageWidth int  `mapstructure:"max_image_width"`

	// Minifier options (HTML)
	HTMLKeepDocumentTags bool `mapstructure:"html_keep_document_tags"`
	HTMLKeepComments     bool `mapstructure:"html_keep_comments"`

	// Beautifier options (JS)
	JSIndentSize int `mapstructure:"js_indent_size"`
}

// loadRootConfig reads webopt.json at the target root when present. A
// missing file is normal; an unparsable one logs a warning and built-in
// defaults apply. Never fatal.
func loadRootConfig(root string) *rootConfig {
	v := viper.New()
	v.SetDefault("image_quality", 80)
	v.SetDefault("resize_images", false)
	v.SetDefault("max_image_width", 1920)
	v.SetDefault("html_keep_document_tags", true)
	v.SetDefault("html_keep_comments", false)
	v.SetDefault("js_indent_size", 4)

	v.SetEnvPrefix("WEBOPT")
	v.AutomaticEnv()

	path := filepath.Join(root, configFileName)
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not parse %s: %v (using defaults)\n", path, err)
		} else {
			fmt.Printf("Using config file: %s\n", path)
		}
	}

	cfg := &rootConfig{}
	if err := v.Unmarshal(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: invalid config values in %s: %v (using defaults)\n", path, err)
		return &rootConfig{
			ImageQuality:         80,
			MaxImageWidth:        1920,
			HTMLKeepDocumentTags: true,
			JSIndentSize:         4,
		}
	}
	return cfg
}
