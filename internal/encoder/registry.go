package encoder

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Registry holds the encoders usable on this machine.
type Registry struct {
	encoders map[string]Encoder
	order    []string
}

// NewRegistry probes every encoder and keeps the available ones.
func NewRegistry() *Registry {
	return newRegistry(
		&PNGEncoder{},
		&JPEGEncoder{},
		&BMPEncoder{},
		&TIFFEncoder{},
		NewWebPEncoder(),
		NewAVIFEncoder(),
	)
}

func newRegistry(all ...Encoder) *Registry {
	r := &Registry{encoders: make(map[string]Encoder)}
	for _, enc := range all {
		if enc.Available() {
			r.encoders[enc.Format()] = enc
			r.order = append(r.order, enc.Format())
		}
	}
	return r
}

// Get returns the encoder for a format name or one of its aliases
// ("jpg", "tif"), or nil.
func (r *Registry) Get(format string) Encoder {
	return r.encoders[canonical(format)]
}

// ForPath picks the encoder from the file extension of path.
func (r *Registry) ForPath(path string) (Encoder, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return nil, fmt.Errorf("%s: no file extension to choose an output format", path)
	}
	enc := r.Get(ext)
	if enc == nil {
		return nil, fmt.Errorf("%s: no encoder for %q (available: %s)", path, ext, strings.Join(r.Available(), ", "))
	}
	return enc, nil
}

// Resolve returns the encoder for format, falling back to PNG when format
// is empty.
func (r *Registry) Resolve(format string) (Encoder, error) {
	if format == "" {
		format = "png"
	}
	enc := r.Get(format)
	if enc == nil {
		return nil, fmt.Errorf("format %q unavailable (available: %s)", format, strings.Join(r.Available(), ", "))
	}
	return enc, nil
}

// Available returns the usable format names in registration order.
func (r *Registry) Available() []string {
	return append([]string(nil), r.order...)
}

func (r *Registry) String() string {
	if len(r.order) == 0 {
		return "no encoders available"
	}
	return fmt.Sprintf("encoders: %s", strings.Join(r.order, ", "))
}

func canonical(format string) string {
	switch f := strings.ToLower(format); f {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	default:
		return f
	}
}
