package server

import (
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/playperu/apitoolbox/internal/proxy"
)

func handleDefine(svc *proxy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		word := chi.URLParam(r, "word")
		// chi matches against RawPath when the path has reserved escapes.
		if r.URL.RawPath != "" {
			if unescaped, err := url.PathUnescape(word); err == nil {
				word = unescaped
			}
		}

		payload, err := svc.Define(r.Context(), word)
		respond(w, payload, err)
	}
}

func handleTranslate(svc *proxy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()

		req, err := proxy.DecodeTranslateRequest(r.Body)
		if err != nil {
			writeError(w, err)
			return
		}

		payload, err := svc.Translate(r.Context(), req)
		respond(w, payload, err)
	}
}
