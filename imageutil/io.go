package imageutil

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"  // Register BMP decoder
	_ "golang.org/x/image/tiff" // Register TIFF decoder
	_ "golang.org/x/image/webp" // Register WebP decoder
)

// Sequence is an ordered set of frames decoded from a still or animated
// source. Delays holds the per-frame delay in hundredths of a second and
// always has the same length as Frames; still images carry a single
// frame with a delay of zero.
type Sequence struct {
	Frames []*RGBAImage
	Delays []int
}

// Images returns the frames as plain image.Image values.
func (s *Sequence) Images() []image.Image {
	imgs := make([]image.Image, len(s.Frames))
	for i, f := range s.Frames {
		imgs[i] = f.RGBA
	}
	return imgs
}

// FPS estimates the frame rate from the recorded delays. Returns 0 for
// still images and sequences without timing information.
func (s *Sequence) FPS() float64 {
	if len(s.Frames) < 2 {
		return 0
	}
	total := 0
	for _, d := range s.Delays {
		total += d
	}
	if total <= 0 {
		return 0
	}
	// Delays are in centiseconds.
	return float64(len(s.Delays)) * 100 / float64(total)
}

// LoadImage loads a single image from the specified path.
// Supports PNG, JPEG, GIF, BMP, TIFF, WebP, and SVG formats.
func LoadImage(path string) (*RGBAImage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	if strings.EqualFold(filepath.Ext(path), ".svg") {
		return DecodeSVG(f)
	}

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	return RGBAImageFromImage(img), nil
}

// LoadSequence loads all frames from the specified path. Animated GIFs
// produce one frame per GIF frame with the recorded delays; every other
// format produces a single-frame sequence.
func LoadSequence(path string) (*Sequence, error) {
	if strings.EqualFold(filepath.Ext(path), ".gif") {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open image: %w", err)
		}
		defer f.Close()
		return DecodeGIF(f)
	}

	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return &Sequence{Frames: []*RGBAImage{img}, Delays: []int{0}}, nil
}

// FetchSequence downloads an image from an http or https URL and decodes
// it like LoadSequence.
func FetchSequence(rawURL string) (*Sequence, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme %q", u.Scheme)
	}

	resp, err := http.Get(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %q: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %q: %s", rawURL, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %q: %w", rawURL, err)
	}

	return DecodeSequence(data, path.Ext(u.Path))
}

// DecodeSequence decodes raw image bytes into a Sequence. The extension
// hint is only consulted for formats image.Decode cannot sniff (SVG).
func DecodeSequence(data []byte, ext string) (*Sequence, error) {
	if bytes.HasPrefix(data, []byte("GIF8")) {
		return DecodeGIF(bytes.NewReader(data))
	}

	if strings.EqualFold(ext, ".svg") || bytes.Contains(data[:min(len(data), 512)], []byte("<svg")) {
		img, err := DecodeSVG(bytes.NewReader(data))
		if err != nil {
			return nil, err
		}
		return &Sequence{Frames: []*RGBAImage{img}, Delays: []int{0}}, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return &Sequence{
		Frames: []*RGBAImage{RGBAImageFromImage(img)},
		Delays: []int{0},
	}, nil
}

// SaveImage saves an image to the specified path.
// Format is determined by file extension (png, jpg/jpeg, gif).
func SaveImage(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".png":
		return png.Encode(f, img)
	case ".jpg", ".jpeg":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case ".gif":
		return gif.Encode(f, img, nil)
	default:
		// Default to PNG
		return png.Encode(f, img)
	}
}

// SavePNG saves an image as PNG to the specified path.
func SavePNG(img image.Image, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	return png.Encode(f, img)
}
