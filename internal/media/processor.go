package media

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"math"
	"mime"
	"os/exec"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/webp"
)

// DefaultMaxDimension caps staged images at 4K on the long edge.
const DefaultMaxDimension = 3840

type Upload struct {
	Reader      io.Reader
	Size        int64
	FileName    string
	ContentType string
}

type Result struct {
	Bytes       []byte
	ContentType string
	Resized     bool
}

// Processor normalizes an uploaded image before it is stored. Images already
// within bounds pass through untouched.
type Processor interface {
	Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error)
}

// FFmpegProcessor shells out to ffmpeg to downscale oversized images. The
// registered stdlib decoders (plus webp) are only used to read dimensions;
// the transcode itself happens out of process.
type FFmpegProcessor struct {
	path         string
	maxDimension int
}

func NewFFmpegProcessor(binaryPath string, maxDimension int) *FFmpegProcessor {
	path := strings.TrimSpace(binaryPath)
	if path == "" {
		path = "ffmpeg"
	}
	if maxDimension <= 0 {
		maxDimension = DefaultMaxDimension
	}
	return &FFmpegProcessor{path: path, maxDimension: maxDimension}
}

func (p *FFmpegProcessor) Process(ctx context.Context, upload Upload, maxDimension int) (*Result, error) {
	if upload.Reader == nil {
		return nil, fmt.Errorf("media: empty reader")
	}
	data, err := io.ReadAll(upload.Reader)
	if err != nil {
		return nil, fmt.Errorf("media: read image: %w", err)
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("media: empty image data")
	}

	contentType := NormalizeContentType(upload.ContentType, upload.FileName)

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("media: decode dimensions: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("media: invalid dimensions %dx%d", cfg.Width, cfg.Height)
	}

	targetMax := maxDimension
	if targetMax <= 0 {
		targetMax = p.maxDimension
	}
	if cfg.Width <= targetMax && cfg.Height <= targetMax {
		return &Result{Bytes: data, ContentType: contentType, Resized: false}, nil
	}

	width, height := scaleToFit(cfg.Width, cfg.Height, targetMax)
	processed, err := p.transcode(ctx, data, contentType, width, height)
	if err != nil {
		return nil, err
	}
	return &Result{Bytes: processed, ContentType: contentType, Resized: true}, nil
}

func scaleToFit(width, height, maxDim int) (int, int) {
	scale := func(v int, ratio float64) int {
		scaled := int(math.Round(float64(v) * ratio))
		if scaled < 2 {
			return 2
		}
		return scaled
	}
	if width >= height {
		return maxDim, scale(height, float64(maxDim)/float64(width))
	}
	return scale(width, float64(maxDim)/float64(height)), maxDim
}

func (p *FFmpegProcessor) transcode(ctx context.Context, data []byte, contentType string, width, height int) ([]byte, error) {
	var codec string
	var codecArgs []string
	switch contentType {
	case "image/jpeg":
		codec, codecArgs = "mjpeg", []string{"-q:v", "3"}
	case "image/png":
		codec, codecArgs = "png", []string{"-compression_level", "4"}
	case "image/webp":
		codec, codecArgs = "libwebp", []string{"-quality", "85"}
	default:
		return nil, fmt.Errorf("media: unsupported content type %s", contentType)
	}

	args := []string{
		"-hide_banner",
		"-loglevel", "error",
		"-i", "pipe:0",
		"-vf", fmt.Sprintf("scale=%d:%d:flags=lanczos", width, height),
		"-frames:v", "1",
		"-f", "image2",
		"-c:v", codec,
	}
	args = append(args, codecArgs...)
	args = append(args, "pipe:1")

	cmd := exec.CommandContext(ctx, p.path, args...)
	cmd.Stdin = bytes.NewReader(data)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("ffmpeg: %v: %s", err, msg)
		}
		return nil, fmt.Errorf("ffmpeg: %w", err)
	}
	if stdout.Len() == 0 {
		return nil, fmt.Errorf("ffmpeg: produced empty output")
	}
	return stdout.Bytes(), nil
}

// NormalizeContentType resolves a usable image MIME type from the declared
// type, falling back to the file extension.
func NormalizeContentType(value, fileName string) string {
	ct := strings.ToLower(strings.TrimSpace(value))
	if ct == "image/jpg" {
		return "image/jpeg"
	}
	if ct != "" {
		return ct
	}
	ext := strings.ToLower(strings.TrimSpace(filepath.Ext(fileName)))
	switch ext {
	case ".jpg", ".jpeg":
		return "image/jpeg"
	case ".png":
		return "image/png"
	case ".webp":
		return "image/webp"
	}
	if ext != "" {
		if mt := mime.TypeByExtension(ext); mt != "" {
			return strings.ToLower(mt)
		}
	}
	return "image/jpeg"
}
