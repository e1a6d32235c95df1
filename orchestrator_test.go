package main

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"os"
	"path/filepath"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeJPEG drops a real JPEG fixture of the given width at rel under root.
func writeJPEG(t *testing.T, root, rel string, width int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, width/2+1))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: uint8(x), G: 100, B: 50, A: 255})
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	writeFixture(t, root, rel, buf.String())
}

func TestRunConvert(t *testing.T) {
	root := t.TempDir()
	writeJPEG(t, root, "photo.jpg", 64)

	ctx := newRunContext(root, testConfig(), true)
	require.NoError(t, ctx.Run(TaskRequest{Task: TaskConvert, Quality: 75}))

	// Exactly one WebP sibling in the same directory.
	_, err := os.Stat(filepath.Join(root, "photo.webp"))
	require.NoError(t, err)

	// The original moved (not copied) into the backup folder.
	_, err = os.Stat(filepath.Join(root, "photo.jpg"))
	assert.True(t, os.IsNotExist(err))
	_, err = os.Stat(filepath.Join(root, backupDirName, "photo.jpg"))
	require.NoError(t, err)

	assert.Equal(t, 1, ctx.stats.Images.Done)
	assert.Equal(t, 0, ctx.stats.Images.Failed)
	assert.Positive(t, ctx.stats.Images.BytesBefore)
	assert.Positive(t, ctx.stats.Images.BytesAfter)
}

func TestRunConvertFailureLeavesOriginal(t *testing.T) {
	root := t.TempDir()
	writeFixture(t, root, "corrupt.jpg", "this is not an image")
	writeJPEG(t, root, "good.jpg", 32)

	ctx := newRunContext(root, testConfig(), true)
	require.NoError(t, ctx.Run(TaskRequest{Task: TaskConvert}))

	// The corrupt file fails in isolation: untouched, no orphaned sibling.
	_, err := os.Stat(filepath.Join(root, "corrupt.jpg"))
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(root, "corrupt.webp"))
	assert.True(t, os.IsNotExist(err))

	// Its sibling still converts.
	_, err = os.Stat(filepath.Join(root, "good.webp"))
	require.NoError(t, err)

	assert.Equal(t, 1, ctx.stats.Images.Done)
	assert.Equal(t, 1, ctx.stats.Images.Failed)
}

func TestRunConvertAdvancedRewritesReferences(t *testing.T) {
	root := t.TempDir()
	writeJPEG(t, root, "photo.jpg", 48)
	writeFixture(t, root, "index.html",
		`<img src="photo.jpg" srcset="photo.jpg 2x">`)

	ctx := newRunContext(root, testConfig(), true)
	require.NoError(t, ctx.Run(TaskRequest{Task: TaskConvertAdvanced, Quality: 80}))

	got := readFixture(t, root, "index.html")
	assert.Equal(t, `<img src="photo.webp" srcset="photo.webp 2x">`, got)
	assert.Equal(t, 1, ctx.stats.Images.Done)
}

func TestRunConvertSkipsBackupFolder(t *testing.T) {
	root := t.TempDir()
	writeJPEG(t, root, "photo.jpg", 32)

	ctx := newRunContext(root, testConfig(), true)
	require.NoError(t, ctx.Run(TaskRequest{Task: TaskConvert}))
	require.Equal(t, 1, ctx.stats.Images.Done)

	// A second run finds nothing: the only remaining raster lives in the
	// backup folder, which the walker never enters.
	require.NoError(t, ctx.Run(TaskRequest{Task: TaskConvert}))
	assert.Equal(t, 0, ctx.stats.Images.Done)
	assert.Equal(t, 0, ctx.stats.Images.Failed)
}

func TestRunResetsStatsBetweenTasks(t *testing.T) {
	root := t.TempDir()
	writeJPEG(t, root, "photo.jpg", 32)
	writeFixture(t, root, "style.css", "body {  color: red;  }")

	ctx := newRunContext(root, testConfig(), true)
	require.NoError(t, ctx.Run(TaskRequest{Task: TaskConvert}))
	require.Equal(t, 1, ctx.stats.Images.Done)

	require.NoError(t, ctx.Run(TaskRequest{Task: TaskMinifyCSS}))
	// The second summary is CSS-only, not cumulative with the first task.
	assert.Equal(t, 0, ctx.stats.Images.Done)
	assert.False(t, ctx.stats.Images.active())
	assert.Equal(t, 1, ctx.stats.CSS.Done)
}

func TestRunUnknownTask(t *testing.T) {
	ctx := newRunContext(t.TempDir(), testConfig(), true)
	assert.Error(t, ctx.Run(TaskRequest{Task: "defragment"}))
}

func TestRunSitemapAndRobotsRequireBaseURL(t *testing.T) {
	for _, task := range []TaskID{TaskSitemap, TaskRobots} {
		t.Run(string(task), func(t *testing.T) {
			root := t.TempDir()
			writeFixture(t, root, "index.html", "<html></html>")

			ctx := newRunContext(root, testConfig(), true)
			err := ctx.Run(TaskRequest{Task: task, Site: SiteDefaults{BaseURL: "  "}})
			require.Error(t, err)
			assert.Contains(t, err.Error(), "base URL")

			// The task aborts before writing anything.
			_, err = os.Stat(filepath.Join(root, sitemapFileName))
			assert.True(t, os.IsNotExist(err))
			_, err = os.Stat(filepath.Join(root, robotsFileName))
			assert.True(t, os.IsNotExist(err))
		})
	}
}

func TestCheckCodec(t *testing.T) {
	assert.NoError(t, checkCodec())
}

func TestConvertResizeOnlyShrinks(t *testing.T) {
	root := t.TempDir()
	writeJPEG(t, root, "small.jpg", 40)

	// MaxWidth above the source width: the image must not be enlarged.
	ctx := newRunContext(root, testConfig(), true)
	req := TaskRequest{Task: TaskConvert, Resize: true, MaxWidth: 400}
	require.NoError(t, ctx.Run(req))
	require.Equal(t, 1, ctx.stats.Images.Done)

	f, err := os.Open(filepath.Join(root, "small.webp"))
	require.NoError(t, err)
	defer f.Close()
	img, err := webp.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 40, img.Bounds().Dx())
}
