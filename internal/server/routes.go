package server

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"

	"github.com/playperu/apitoolbox/internal/catalog"
	"github.com/playperu/apitoolbox/internal/proxy"
	"github.com/playperu/apitoolbox/internal/toolbox"
)

func addRoutes(r chi.Router, logger *slog.Logger, svc *proxy.Service, cat *catalog.Catalog, spaDir string) {
	if cat == nil {
		cat = catalog.Default()
	}

	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", handleSwaggerUI())

	r.Route("/api", func(r chi.Router) {
		r.NotFound(func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, toolbox.APIError{Message: "Not found"})
		})

		r.Get("/dictionary/define", handleDefine(svc))
		r.Get("/dictionary/define/", handleDefine(svc))
		r.Get("/dictionary/define/{word}", handleDefine(svc))
		r.Post("/dictionary/translate", handleTranslate(svc))

		r.Get("/prayer-times", handlePrayerTimes(svc))
		r.Get("/qibla-direction", handleQibla(svc))

		r.Get("/riddle", handleRiddle(svc))
		r.Get("/free-games", handleFreeGames(svc))

		r.Get("/catalog", handleCatalog(cat))
	})

	if spaDir != "" {
		if info, err := os.Stat(spaDir); err == nil && info.IsDir() {
			logger.Info("serving SPA", "dir", spaDir)
			r.NotFound(handleSPA(spaDir))
		}
	}
}

func handleSwaggerUI() http.HandlerFunc {
	return v5emb.New("API Toolbox", "/openapi.json", "/docs").ServeHTTP
}
