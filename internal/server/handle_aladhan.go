package server

import (
	"net/http"

	"github.com/playperu/apitoolbox/internal/proxy"
)

func handlePrayerTimes(svc *proxy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		payload, err := svc.PrayerTimes(r.Context(), proxy.PrayerTimesQuery{
			City:    q.Get("city"),
			Country: q.Get("country"),
			Method:  q.Get("method"),
		})
		respond(w, payload, err)
	}
}

func handleQibla(svc *proxy.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		payload, err := svc.Qibla(r.Context(), proxy.QiblaQuery{
			Latitude:  q.Get("latitude"),
			Longitude: q.Get("longitude"),
		})
		respond(w, payload, err)
	}
}
