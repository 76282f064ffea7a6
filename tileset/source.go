package tileset

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// Source opens tileset images by the path stored in a Spec.
type Source interface {
	Open(path string) (image.Image, error)
}

// Resolver is implemented by sources that can report the file a path
// resolves to.
type Resolver interface {
	Resolve(path string) (string, bool)
}

// DirSource reads images from disk. A path is tried as given, then under
// each root, then by base name under each root.
type DirSource struct {
	Roots []string
}

func (s DirSource) candidates(p string) []string {
	out := []string{p}
	if filepath.IsAbs(p) {
		for _, root := range s.Roots {
			out = append(out, filepath.Join(root, filepath.Base(p)))
		}
		return out
	}
	for _, root := range s.Roots {
		out = append(out, filepath.Join(root, p))
	}
	for _, root := range s.Roots {
		out = append(out, filepath.Join(root, filepath.Base(p)))
	}
	return out
}

func (s DirSource) Resolve(p string) (string, bool) {
	if p == "" {
		return "", false
	}
	for _, c := range s.candidates(p) {
		if fi, err := os.Stat(c); err == nil && !fi.IsDir() {
			return c, true
		}
	}
	return "", false
}

func (s DirSource) Open(p string) (image.Image, error) {
	resolved, ok := s.Resolve(p)
	if !ok {
		return nil, fs.ErrNotExist
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		return nil, err
	}
	return decode(b, resolved)
}

// FSSource reads images from an fs.FS such as an embed.FS. Prefix is
// stripped from incoming paths, so "assets/grass.png" can be served from
// a filesystem rooted at assets/.
type FSSource struct {
	FS     fs.FS
	Prefix string
}

func (s FSSource) Open(p string) (image.Image, error) {
	if p == "" {
		return nil, fs.ErrNotExist
	}
	clean := s.clean(p)
	b, err := fs.ReadFile(s.FS, clean)
	if errors.Is(err, fs.ErrNotExist) {
		clean = path.Base(clean)
		b, err = fs.ReadFile(s.FS, clean)
	}
	if err != nil {
		return nil, err
	}
	return decode(b, clean)
}

func (s FSSource) clean(p string) string {
	p = filepath.ToSlash(p)
	if s.Prefix != "" {
		prefix := strings.TrimSuffix(s.Prefix, "/") + "/"
		if idx := strings.LastIndex(p, "/"+prefix); idx >= 0 {
			p = p[idx+len(prefix)+1:]
		}
		p = strings.TrimPrefix(p, prefix)
	}
	return strings.TrimPrefix(path.Clean(p), "/")
}

func decode(b []byte, name string) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return img, nil
}

// IsImage reports whether p has an extension one of the registered
// decoders handles.
func IsImage(p string) bool {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".png", ".jpg", ".jpeg", ".gif", ".bmp", ".webp":
		return true
	}
	return false
}
