package server

import (
	"net/http"

	"github.com/playperu/apitoolbox/internal/proxy"
	"github.com/playperu/apitoolbox/internal/toolbox"
)

func handleFreeGames(svc *proxy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		payload, err := svc.FreeGames(r.Context(), toolbox.GameFilter{
			Platform: q.Get("platform"),
			Category: q.Get("category"),
			SortBy:   q.Get("sort-by"),
		})
		respond(w, payload, err)
	}
}

func handleRiddle(svc *proxy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := svc.Riddle(r.Context())
		respond(w, payload, err)
	}
}
