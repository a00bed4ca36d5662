package api

import (
	"io"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/mlakar/wishbox/internal/model"
	"github.com/mlakar/wishbox/internal/store"
)

// maxUploadSize limits image upload bodies.
const maxUploadSize = 10 << 20

// MediaHandler handles image upload and retrieval, passing bytes through to
// the blob store untouched.
type MediaHandler struct {
	DB   *sqlx.DB
	resp *responder
}

// Upload handles PUT /upload/{key}: the raw request body is stored under the
// key with the client's Content-Type.
func (h *MediaHandler) Upload(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		h.resp.Error(w, http.StatusBadRequest, "failed to read upload body")
		return
	}

	if _, err := store.PutBlob(r.Context(), h.DB, key, data, r.Header.Get("Content-Type")); err != nil {
		if model.IsValidation(err) {
			h.resp.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.resp.Error(w, http.StatusInternalServerError, "failed to store image")
		return
	}

	h.resp.JSON(w, http.StatusOK, map[string]any{"success": true, "key": key})
}

// Get handles GET /image/{key}: streams the blob with its stored content type
// and entity tag. A missing key is a 404, never a server error.
func (h *MediaHandler) Get(w http.ResponseWriter, r *http.Request) {
	key := r.PathValue("key")

	blob, err := store.GetBlob(r.Context(), h.DB, key)
	if err != nil {
		h.resp.Error(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if blob == nil {
		h.resp.Error(w, http.StatusNotFound, "image not found")
		return
	}

	etag := `"` + blob.ETag + `"`
	if r.Header.Get("If-None-Match") == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", blob.ContentType)
	w.Header().Set("ETag", etag)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(blob.Data)
}
