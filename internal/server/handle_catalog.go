package server

import (
	"net/http"

	"github.com/playperu/apitoolbox/internal/catalog"
)

// handleCatalog serves the lookup tables the front end builds its selectors
// from.
func handleCatalog(cat *catalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, cat)
	}
}
