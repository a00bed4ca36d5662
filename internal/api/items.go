package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/jmoiron/sqlx"

	"github.com/mlakar/wishbox/internal/model"
	"github.com/mlakar/wishbox/internal/store"
)

// ItemsHandler handles item CRUD endpoints.
type ItemsHandler struct {
	DB   *sqlx.DB
	resp *responder
}

// itemPayload is the request body for create and update. Every field is a
// pointer so that an absent field and an explicit empty value stay
// distinguishable: absent fields are never written.
type itemPayload struct {
	Name     *string  `json:"name"`
	Price    *float64 `json:"price"`
	URL      *string  `json:"url"`
	ImageKey *string  `json:"imageKey"`
	Category *string  `json:"category"`
	Priority *int     `json:"priority"`
}

// decodeItemPayload parses the request body. An empty body yields an empty
// payload, which PUT treats as "no fields provided".
func decodeItemPayload(r *http.Request) (itemPayload, error) {
	defer r.Body.Close()
	var p itemPayload
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return itemPayload{}, err
	}
	return p, nil
}

// List handles GET /items.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	items, err := store.ListItems(r.Context(), h.DB, category)
	if err != nil {
		h.resp.Error(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	h.resp.JSON(w, http.StatusOK, items)
}

// Create handles POST /items.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeItemPayload(r)
	if err != nil {
		h.resp.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fields := store.ItemFields{
		Price:    req.Price,
		Priority: req.Priority,
	}
	if req.Name != nil {
		fields.Name = *req.Name
	}
	if req.URL != nil {
		fields.URL = *req.URL
	}
	if req.ImageKey != nil {
		fields.ImageKey = *req.ImageKey
	}
	if req.Category != nil {
		fields.Category = *req.Category
	}

	id, err := store.InsertItem(r.Context(), h.DB, fields)
	if err != nil {
		if model.IsValidation(err) {
			h.resp.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.resp.Error(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	h.resp.JSON(w, http.StatusOK, map[string]any{"success": true, "id": id})
}

// Update handles PUT /items/{id}. An empty body succeeds without mutating
// anything; otherwise only the fields present in the body are written.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.resp.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	req, err := decodeItemPayload(r)
	if err != nil {
		h.resp.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	patch := store.ItemPatch{
		Name:     req.Name,
		Price:    req.Price,
		URL:      req.URL,
		ImageKey: req.ImageKey,
		Category: req.Category,
		Priority: req.Priority,
	}

	if err := store.UpdateItem(r.Context(), h.DB, id, patch); err != nil {
		if model.IsValidation(err) {
			h.resp.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		h.resp.Error(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	h.resp.JSON(w, http.StatusOK, map[string]any{"success": true})
}

// Delete handles DELETE /items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		h.resp.Error(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		h.resp.Error(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	h.resp.JSON(w, http.StatusOK, map[string]any{"success": true})
}
