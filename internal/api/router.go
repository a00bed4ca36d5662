package api

import (
	"net/http"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/mlakar/wishbox/internal/assets"
)

// NewRouter creates the router with all endpoints registered. Every path that
// is not part of the REST surface falls through to the static asset handler.
func NewRouter(db *sqlx.DB, manifest *assets.Manifest, logger *zap.Logger) http.Handler {
	mux := http.NewServeMux()

	resp := &responder{logger: logger}
	itemsHandler := &ItemsHandler{DB: db, resp: resp}
	mediaHandler := &MediaHandler{DB: db, resp: resp}

	mux.HandleFunc("GET /items", itemsHandler.List)
	mux.HandleFunc("POST /items", itemsHandler.Create)
	mux.HandleFunc("PUT /items/{id}", itemsHandler.Update)
	mux.HandleFunc("DELETE /items/{id}", itemsHandler.Delete)

	mux.HandleFunc("PUT /upload/{key}", mediaHandler.Upload)
	mux.HandleFunc("GET /image/{key}", mediaHandler.Get)

	mux.Handle("/", &assets.Handler{Manifest: manifest})

	return mux
}
