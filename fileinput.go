package tooni

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// ErrNoFile is returned when a file input has nothing selected.
var ErrNoFile = errors.New("tooni: no file selected")

// FileInput is a single-file picker.
type FileInput interface {
	// Selected opens the chosen file. ok is false when nothing is selected.
	Selected() (f fs.File, ok bool)
}

// OpenSelected opens the file chosen in in. It returns ErrNoFile when in is
// nil or has nothing selected.
func OpenSelected(in FileInput) (fs.File, error) {
	if in == nil {
		return nil, ErrNoFile
	}
	f, ok := in.Selected()
	if !ok {
		return nil, ErrNoFile
	}
	return f, nil
}

// DroppedFiles selects the first regular file of a drag-and-drop, as
// returned by ebiten.DroppedFiles. A nil FS selects nothing.
type DroppedFiles struct {
	FS fs.FS
}

// Selected implements FileInput.
func (d DroppedFiles) Selected() (fs.File, bool) {
	if d.FS == nil {
		return nil, false
	}
	entries, err := fs.ReadDir(d.FS, ".")
	if err != nil {
		logf("dropped files: %v", err)
		return nil, false
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		f, err := d.FS.Open(e.Name())
		if err != nil {
			logf("dropped files: open %s: %v", e.Name(), err)
			return nil, false
		}
		return f, true
	}
	return nil, false
}

// LocalFile selects a file by path. An empty path selects nothing.
type LocalFile string

// Selected implements FileInput.
func (p LocalFile) Selected() (fs.File, bool) {
	if p == "" {
		return nil, false
	}
	f, err := os.Open(string(p))
	if err != nil {
		logf("local file: %v", err)
		return nil, false
	}
	return f, true
}

// ReadDataURI reads f to the end, closes it, and returns its contents as a
// base64 data URI. The media type is sniffed from the content.
func ReadDataURI(f fs.File) (string, error) {
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return "", fmt.Errorf("read file: %w", err)
	}
	return EncodeDataURI(http.DetectContentType(data), data), nil
}

// EncodeDataURI formats data as "data:<mime>;base64,<payload>".
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// IsDataURI reports whether src is a data URI.
func IsDataURI(src string) bool {
	return len(src) >= 5 && strings.EqualFold(src[:5], "data:")
}

// ErrBadDataURI is returned for malformed data URIs.
var ErrBadDataURI = errors.New("malformed data uri")

// DecodeDataURI returns the payload and media type of a data URI. Both
// base64 and percent-encoded payloads are accepted.
func DecodeDataURI(uri string) (data []byte, mime string, err error) {
	if !IsDataURI(uri) {
		return nil, "", ErrBadDataURI
	}
	meta, payload, ok := strings.Cut(uri[5:], ",")
	if !ok {
		return nil, "", ErrBadDataURI
	}
	mime = "text/plain"
	isBase64 := false
	if m, rest, _ := strings.Cut(meta, ";"); m != "" || rest != "" {
		if m != "" {
			mime = m
		}
		for _, p := range strings.Split(rest, ";") {
			if strings.EqualFold(p, "base64") {
				isBase64 = true
			}
		}
	}
	if isBase64 {
		data, err = base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrBadDataURI, err)
		}
		return data, mime, nil
	}
	s, err := url.PathUnescape(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrBadDataURI, err)
	}
	return []byte(s), mime, nil
}
