package source

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/jamesbarr/centr/pkg/geometry"
	"github.com/jamesbarr/centr/util/log"
	_ "golang.org/x/image/webp" // Register WebP decoder
	"golang.org/x/time/rate"
)

const (
	defaultTimeout  = 30 * time.Second
	defaultMaxBytes = 64 << 20
)

// Image is a decoded source image.
type Image struct {
	image.Image
	Format string
	URI    string
}

// Size returns the intrinsic size of the image after EXIF orientation.
func (i *Image) Size() geometry.Rect {
	b := i.Bounds()
	return geometry.Size(float64(b.Dx()), float64(b.Dy()))
}

// Loader reads images from local files and http(s) URLs.
type Loader struct {
	client    *http.Client
	userAgent string
	limiter   *rate.Limiter
	maxBytes  int64
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for remote images.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithUserAgent sets the User-Agent header sent with remote requests.
func WithUserAgent(ua string) Option {
	return func(l *Loader) { l.userAgent = ua }
}

// WithRateLimit caps remote requests per second. Zero disables the limit.
func WithRateLimit(perSecond float64) Option {
	return func(l *Loader) {
		if perSecond <= 0 {
			l.limiter = rate.NewLimiter(rate.Inf, 0)
			return
		}
		l.limiter = rate.NewLimiter(rate.Limit(perSecond), 1)
	}
}

// WithMaxBytes caps the size of an image file.
func WithMaxBytes(n int64) Option {
	return func(l *Loader) { l.maxBytes = n }
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:   &http.Client{Timeout: defaultTimeout},
		limiter:  rate.NewLimiter(rate.Inf, 0),
		maxBytes: defaultMaxBytes,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.userAgent != "" {
		client := *l.client
		client.Transport = &UserAgentTransport{RoundTripper: client.Transport, UserAgent: l.userAgent}
		l.client = &client
	}
	return l
}

// Load reads and decodes the image at uri, applying EXIF orientation.
func (l *Loader) Load(ctx context.Context, uri string) (*Image, error) {
	data, err := l.read(ctx, uri)
	if err != nil {
		return nil, err
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image config: %w", err)
	}
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loaded := &Image{Image: img, Format: format, URI: uri}
	if loaded.Size().IsZero() {
		return nil, fmt.Errorf("%s: %w: empty image", uri, geometry.ErrInvalidGeometry)
	}
	log.Debugf("Loaded %s image %s from %s", format, geometry.FormatDimensions(loaded.Size()), uri)
	return loaded, nil
}

// Probe returns the stored size and format of the image at uri without
// decoding its pixels. EXIF orientation is not applied.
func (l *Loader) Probe(ctx context.Context, uri string) (geometry.Rect, string, error) {
	data, err := l.read(ctx, uri)
	if err != nil {
		return geometry.Rect{}, "", err
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return geometry.Rect{}, "", fmt.Errorf("decoding image config: %w", err)
	}
	size, err := geometry.NewSize(float64(cfg.Width), float64(cfg.Height))
	if err != nil {
		return geometry.Rect{}, "", fmt.Errorf("%s: %w", uri, err)
	}
	return size, format, nil
}

func (l *Loader) read(ctx context.Context, uri string) ([]byte, error) {
	rc, err := l.open(ctx, uri)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(io.LimitReader(rc, l.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", uri, err)
	}
	if int64(len(data)) > l.maxBytes {
		return nil, fmt.Errorf("reading %s: larger than %d bytes", uri, l.maxBytes)
	}
	return data, nil
}

func (l *Loader) open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	u, err := url.Parse(uri)
	// A single letter scheme is a Windows drive, not a URL.
	if err != nil || len(u.Scheme) <= 1 {
		return openFile(uri)
	}

	switch strings.ToLower(u.Scheme) {
	case "file":
		return openFile(filepath.FromSlash(u.Path))
	case "http", "https":
		return l.download(ctx, u.String())
	default:
		return nil, fmt.Errorf("unsupported image source scheme %q", u.Scheme)
	}
}

func openFile(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening image: %w", err)
	}
	return f, nil
}

func (l *Loader) download(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	if err := l.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("waiting for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "image/webp,image/png,image/jpeg,image/*;q=0.8")

	log.Debugf("Downloading %s", rawURL)
	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading image: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("downloading image: unexpected status %s", resp.Status)
	}
	return resp.Body, nil
}
