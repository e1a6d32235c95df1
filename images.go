package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
)

// convertOptions are the caller-supplied knobs for one conversion run.
type convertOptions struct {
	Quality  int  // 1-100
	Resize   bool // downscale images wider than MaxWidth
	MaxWidth int
}

// checkCodec runs a one-shot encode self-test before the first image task.
// The codec is compiled in, so this replaces the runtime dependency check a
// script-based tool would do; an unusable codec aborts before any directory
// is touched.
func checkCodec() error {
	var buf bytes.Buffer
	probe := image.NewRGBA(image.Rect(0, 0, 1, 1))
	if err := webp.Encode(&buf, probe, &webp.Options{Quality: 80}); err != nil {
		return fmt.Errorf("webp encoder unavailable: %w", err)
	}
	return nil
}

// convertImages walks the tree and converts every matching raster image to a
// WebP sibling in the same directory. On success the original moves into the
// per-directory backup folder; on failure the original is untouched and any
// partially written output is removed.
func convertImages(root string, opts convertOptions, walker *treeWalker, stats *Stats) error {
	return walker.Walk(func(e Entry) {
		if !isConvertibleImage(e.Name) {
			return
		}
		after, err := convertOne(e.Path, opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error converting %s: %v\n", e.Path, err)
			stats.Images.recordFailure()
			return
		}
		fmt.Printf("Converted %s (%d -> %d bytes)\n", e.Path, e.Size, after)
		stats.Images.recordSuccess(e.Size, after)
	})
}

// convertOne converts a single image and relocates the original. It returns
// the size of the written WebP file.
func convertOne(path string, opts convertOptions) (int64, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return 0, fmt.Errorf("decode: %w", err)
	}

	// Downscale only; images narrower than the target are never enlarged.
	if opts.Resize && opts.MaxWidth > 0 && img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	outPath := webpSibling(path)
	out, err := os.Create(outPath)
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", outPath, err)
	}
	if err := webp.Encode(out, img, &webp.Options{Quality: float32(opts.Quality)}); err != nil {
		out.Close()
		os.Remove(outPath) // no orphaned partial sibling
		return 0, fmt.Errorf("encode: %w", err)
	}
	if err := out.Close(); err != nil {
		os.Remove(outPath)
		return 0, fmt.Errorf("close %s: %w", outPath, err)
	}

	info, err := os.Stat(outPath)
	if err != nil {
		os.Remove(outPath)
		return 0, fmt.Errorf("stat %s: %w", outPath, err)
	}

	if err := backupOriginal(path); err != nil {
		os.Remove(outPath)
		return 0, err
	}
	return info.Size(), nil
}

// webpSibling maps photo.jpg to photo.webp in the same directory.
func webpSibling(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext) + webpExt
}

// backupOriginal moves the pre-conversion original into the per-directory
// backup folder, overwriting any prior backup of the same name. The backup
// folder is reserved by the skip policy, so later passes never descend into
// it.
func backupOriginal(path string) error {
	backupDir := filepath.Join(filepath.Dir(path), backupDirName)
	if err := os.MkdirAll(backupDir, 0755); err != nil {
		return fmt.Errorf("create backup folder: %w", err)
	}
	dest := filepath.Join(backupDir, filepath.Base(path))
	if err := os.Rename(path, dest); err != nil {
		return fmt.Errorf("move original to backup: %w", err)
	}
	return nil
}
