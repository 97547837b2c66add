package tooni

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// ExportName is the file name exported compositions are saved under.
const ExportName = "tooni.png"

// Downloader delivers an exported file to the user.
type Downloader interface {
	Download(name string, data []byte) error
}

// DirDownloader saves downloads into a local directory.
type DirDownloader struct {
	Dir string
}

// Download writes data to Dir/name, replacing any existing file.
func (d DirDownloader) Download(name string, data []byte) error {
	dir := d.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	path := filepath.Join(dir, sanitizeName(name))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	logf("export: saved %s (%d bytes)", path, len(data))
	return nil
}

// EncodePNG encodes img as a lossless PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.DefaultCompression}
	if err := enc.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// readNRGBA copies the pixels of img and converts premultiplied RGBA to
// straight-alpha NRGBA.
func readNRGBA(img *ebiten.Image) *image.NRGBA {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	img.ReadPixels(pixels)

	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(out.Pix, pixels)
	return out
}

// unpremultiply converts premultiplied RGBA bytes in src into straight
// alpha in dst. Both slices must have the same length.
func unpremultiply(dst, src []byte) {
	for i := 0; i+3 < len(src); i += 4 {
		r, g, b, a := src[i], src[i+1], src[i+2], src[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		dst[i] = r
		dst[i+1] = g
		dst[i+2] = b
		dst[i+3] = a
	}
}

// sanitizeName replaces characters that are unsafe in file names with
// underscores and falls back to ExportName for empty strings.
func sanitizeName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return ExportName
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
