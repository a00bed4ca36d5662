// Package assets serves the embedded frontend through a read-only manifest
// mapping logical request paths to content-addressed entries, built once at
// startup.
package assets

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"mime"
	"net/http"
	"path"
)

// Asset is one embedded static file. Key is the hex SHA-256 of the content
// and doubles as the entity tag.
type Asset struct {
	Key         string
	ContentType string
	Data        []byte
}

// Manifest is a read-only mapping from logical path to asset.
type Manifest struct {
	entries map[string]Asset
	entry   Asset
}

// Build walks fsys, hashing every file into the manifest. entry names the
// single-page-app entry document (e.g. "index.html") served for paths with
// no exact match.
func Build(fsys fs.FS, entry string) (*Manifest, error) {
	m := &Manifest{entries: make(map[string]Asset)}

	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("reading asset %s: %w", p, err)
		}

		sum := sha256.Sum256(data)
		contentType := mime.TypeByExtension(path.Ext(p))
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		m.entries["/"+p] = Asset{
			Key:         hex.EncodeToString(sum[:]),
			ContentType: contentType,
			Data:        data,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building asset manifest: %w", err)
	}

	root, ok := m.entries["/"+entry]
	if !ok {
		return nil, fmt.Errorf("entry document %s not found in assets", entry)
	}
	m.entry = root

	return m, nil
}

// Lookup returns the asset registered under the logical path.
func (m *Manifest) Lookup(p string) (Asset, bool) {
	a, ok := m.entries[p]
	return a, ok
}

// Entry returns the single-page-app entry document.
func (m *Manifest) Entry() Asset {
	return m.entry
}

// Handler serves manifest assets, falling back to the entry document for
// unknown paths so client-side routes resolve.
type Handler struct {
	Manifest *Manifest
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	asset, ok := h.Manifest.Lookup(r.URL.Path)
	if !ok {
		asset = h.Manifest.Entry()
	}

	etag := `"` + asset.Key + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", asset.ContentType)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(asset.Data)
}
