package tooni

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // register decoder
	_ "image/jpeg" // register decoder
	_ "image/png"  // register decoder
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"
	"sync"

	"github.com/hajimehoshi/ebiten/v2"
	_ "golang.org/x/image/bmp"  // register decoder
	_ "golang.org/x/image/webp" // register decoder
	"golang.org/x/sync/singleflight"
)

// ImageLoader resolves an image source (a path under the image root or a
// data URI) to a GPU image. Implementations must be safe for concurrent use.
type ImageLoader interface {
	Load(ctx context.Context, src string) (*ebiten.Image, error)
}

// imageCache deduplicates concurrent loads of one source and keeps decoded
// images for later toggles of the same item.
type imageCache struct {
	group  singleflight.Group
	mu     sync.Mutex
	images map[string]*ebiten.Image
}

func (c *imageCache) load(ctx context.Context, key string, fetch func(context.Context) ([]byte, error)) (*ebiten.Image, error) {
	if img, ok := c.cached(key); ok {
		return img, nil
	}

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A flight that finished between the lookup above and Do has
		// already stored the image.
		if img, ok := c.cached(key); ok {
			return img, nil
		}
		data, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		img, err := decodeImage(data)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.images == nil {
			c.images = make(map[string]*ebiten.Image)
		}
		c.images[key] = img
		c.mu.Unlock()
		return img, nil
	})
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", key, err)
	}
	return v.(*ebiten.Image), nil
}

func (c *imageCache) cached(key string) (*ebiten.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	img, ok := c.images[key]
	return img, ok
}

// decodeImage decodes any registered format into a new GPU image.
func decodeImage(data []byte) (*ebiten.Image, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return ebiten.NewImageFromImage(src), nil
}

// loadDataURI decodes an inline image. Data URIs are not cached.
func loadDataURI(src string) (*ebiten.Image, error) {
	data, _, err := DecodeDataURI(src)
	if err != nil {
		return nil, err
	}
	img, err := decodeImage(data)
	if err != nil {
		return nil, fmt.Errorf("load data uri: %w", err)
	}
	return img, nil
}

// AssetLoader loads images from a file system. A source of
// "/images/face/Eyepatch.png" opens "images/face/Eyepatch.png" in the FS.
type AssetLoader struct {
	fsys  fs.FS
	cache imageCache
}

// NewAssetLoader creates a loader reading from fsys, typically
// os.DirFS(assetsDir) or an embed.FS.
func NewAssetLoader(fsys fs.FS) *AssetLoader {
	return &AssetLoader{fsys: fsys}
}

// Load implements ImageLoader.
func (l *AssetLoader) Load(ctx context.Context, src string) (*ebiten.Image, error) {
	if IsDataURI(src) {
		return loadDataURI(src)
	}
	name := strings.TrimPrefix(path.Clean("/"+src), "/")
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("load %s: %w", src, fs.ErrInvalid)
	}
	return l.cache.load(ctx, name, func(context.Context) ([]byte, error) {
		return fs.ReadFile(l.fsys, name)
	})
}

// HTTPLoader loads images relative to a base URL.
type HTTPLoader struct {
	base   *url.URL
	client *http.Client
	cache  imageCache
}

// NewHTTPLoader creates a loader resolving sources against baseURL. A nil
// client uses http.DefaultClient.
func NewHTTPLoader(baseURL string, client *http.Client) (*HTTPLoader, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPLoader{base: u, client: client}, nil
}

// Load implements ImageLoader.
func (l *HTTPLoader) Load(ctx context.Context, src string) (*ebiten.Image, error) {
	if IsDataURI(src) {
		return loadDataURI(src)
	}
	ref, err := url.Parse(src)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", src, err)
	}
	target := l.base.ResolveReference(ref).String()
	return l.cache.load(ctx, target, func(ctx context.Context) ([]byte, error) {
		return l.get(ctx, target)
	})
}

// ErrHTTPStatus marks a non-200 response from an HTTPLoader.
var ErrHTTPStatus = errors.New("unexpected http status")

func (l *HTTPLoader) get(ctx context.Context, target string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s", ErrHTTPStatus, resp.Status)
	}
	return io.ReadAll(resp.Body)
}
