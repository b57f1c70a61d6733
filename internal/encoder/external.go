package encoder

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"os/exec"
	"strconv"
	"sync"
	"sync/atomic"
)

var tempCounter atomic.Int64

// ToolEncoder encodes by writing a temporary PNG and running an external
// binary on it. WebP and AVIF have no pure-Go encoder, so both go through
// their reference tools (cwebp, avifenc).
type ToolEncoder struct {
	format string
	ext    string
	tool   string
	hint   string

	// args builds the command line for quality, source and destination.
	args func(quality int, src, dst string) []string

	once sync.Once
	path string
}

// NewWebPEncoder returns the cwebp-backed encoder.
func NewWebPEncoder() *ToolEncoder {
	return &ToolEncoder{
		format: "webp",
		ext:    "webp",
		tool:   "cwebp",
		hint:   "apt install webp",
		args: func(q int, src, dst string) []string {
			return []string{"-q", strconv.Itoa(q), "-m", "6", "-mt", "-exact", "-quiet", src, "-o", dst}
		},
	}
}

// NewAVIFEncoder returns the avifenc-backed encoder.
func NewAVIFEncoder() *ToolEncoder {
	return &ToolEncoder{
		format: "avif",
		ext:    "avif",
		tool:   "avifenc",
		hint:   "apt install libavif-bin",
		args: func(q int, src, dst string) []string {
			// avifenc quantizer: 0 best, 63 worst.
			aq := strconv.Itoa(63 - q*63/100)
			return []string{"--min", aq, "--max", aq, "--speed", "6", "-j", "all", src, dst}
		},
	}
}

func (e *ToolEncoder) Format() string    { return e.format }
func (e *ToolEncoder) Extension() string { return e.ext }
func (e *ToolEncoder) Alpha() bool       { return true }

func (e *ToolEncoder) Available() bool {
	e.once.Do(func() {
		if p, err := exec.LookPath(e.tool); err == nil {
			e.path = p
		}
	})
	return e.path != ""
}

func (e *ToolEncoder) Encode(img image.Image, quality int) ([]byte, error) {
	if !e.Available() {
		return nil, fmt.Errorf("%s not found in PATH; install with: %s", e.tool, e.hint)
	}

	id := tempCounter.Add(1)
	src, err := os.CreateTemp("", fmt.Sprintf("matstudio_%s_src_%d_*.png", e.format, id))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	srcPath := src.Name()
	defer os.Remove(srcPath)

	if err := png.Encode(src, img); err != nil {
		src.Close()
		return nil, fmt.Errorf("encode temp png: %w", err)
	}
	if err := src.Close(); err != nil {
		return nil, fmt.Errorf("close temp: %w", err)
	}

	dst, err := os.CreateTemp("", fmt.Sprintf("matstudio_%s_dst_%d_*.%s", e.format, id, e.ext))
	if err != nil {
		return nil, fmt.Errorf("create temp: %w", err)
	}
	dstPath := dst.Name()
	dst.Close()
	defer os.Remove(dstPath)

	cmd := exec.Command(e.path, e.args(clampQuality(quality), srcPath, dstPath)...)
	if out, err := cmd.CombinedOutput(); err != nil {
		return nil, fmt.Errorf("%s: %w: %s", e.tool, err, string(out))
	}
	return os.ReadFile(dstPath)
}
