package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/apitoolbox/internal/catalog"
	"github.com/playperu/apitoolbox/internal/toolbox"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Message    string `json:"message" required:"true"`
	Title      string `json:"title,omitempty"`
	Resolution string `json:"resolution,omitempty"`
	Details    any    `json:"details,omitempty" description:"Upstream body or fragment, when available."`
}

type defineRequest struct {
	Word string `path:"word" description:"English word to look up."`
}

type prayerTimesRequest struct {
	City    string `query:"city" required:"true"`
	Country string `query:"country" required:"true"`
	Method  string `query:"method" default:"2" description:"Aladhan calculation method."`
}

type qiblaRequest struct {
	Latitude  string `query:"latitude" required:"true"`
	Longitude string `query:"longitude" required:"true"`
}

type freeGamesRequest struct {
	Platform string `query:"platform" enum:"all,pc,browser"`
	Category string `query:"category"`
	SortBy   string `query:"sort-by" enum:"relevance,release-date,popularity,alphabetical"`
}

type healthStatus struct {
	Status string `json:"status" enum:"ok,error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "API Toolbox"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Same-origin proxy over the dictionary, prayer times, Qibla, riddle and free game services.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Reports whether each upstream service is reachable.")
	getHealthz.AddRespStructure(map[string]healthStatus{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(map[string]healthStatus{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/dictionary/define/{word}
	define, _ := r.NewOperationContext(http.MethodGet, "/api/dictionary/define/{word}")
	define.SetSummary("Define a word")
	define.SetDescription("Proxies dictionaryapi.dev. A 404 carries the upstream body unchanged.")
	define.AddReqStructure(defineRequest{})
	define.AddRespStructure([]toolbox.DictionaryEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	define.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	define.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	define.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(define)

	// POST /api/dictionary/translate
	translate, _ := r.NewOperationContext(http.MethodPost, "/api/dictionary/translate")
	translate.SetSummary("Mock translation")
	translate.SetDescription("Returns a synthetic translation after a fixed delay. No external call is made.")
	translate.AddReqStructure(toolbox.TranslateRequest{})
	translate.AddRespStructure(toolbox.TranslationResult{}, openapi.WithHTTPStatus(http.StatusOK))
	translate.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(translate)

	// GET /api/prayer-times
	prayer, _ := r.NewOperationContext(http.MethodGet, "/api/prayer-times")
	prayer.SetSummary("Prayer times")
	prayer.SetDescription("Today's timings for a city from Aladhan. An embedded failure code is reported as an error.")
	prayer.AddReqStructure(prayerTimesRequest{})
	prayer.AddRespStructure(toolbox.PrayerTimesResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	prayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	prayer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(prayer)

	// GET /api/qibla-direction
	qibla, _ := r.NewOperationContext(http.MethodGet, "/api/qibla-direction")
	qibla.SetSummary("Qibla direction")
	qibla.SetDescription("Bearing towards the Kaaba for a coordinate pair, from Aladhan.")
	qibla.AddReqStructure(qiblaRequest{})
	qibla.AddRespStructure(toolbox.QiblaResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	qibla.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	qibla.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(qibla)

	// GET /api/riddle
	riddle, _ := r.NewOperationContext(http.MethodGet, "/api/riddle")
	riddle.SetSummary("Random riddle")
	riddle.AddRespStructure(toolbox.Riddle{}, openapi.WithHTTPStatus(http.StatusOK))
	riddle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	riddle.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusInternalServerError))
	_ = r.AddOperation(riddle)

	// GET /api/free-games
	games, _ := r.NewOperationContext(http.MethodGet, "/api/free-games")
	games.SetSummary("Free-to-play games")
	games.SetDescription("Proxies the FreeToGame catalog. Filters are forwarded only when set.")
	games.AddReqStructure(freeGamesRequest{})
	games.AddRespStructure([]toolbox.FreeToGameEntry{}, openapi.WithHTTPStatus(http.StatusOK))
	games.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	games.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadGateway))
	games.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(games)

	// GET /api/catalog
	getCatalog, _ := r.NewOperationContext(http.MethodGet, "/api/catalog")
	getCatalog.SetSummary("Lookup tables")
	getCatalog.SetDescription("Languages, game platforms, categories, sort options and countries with cities.")
	getCatalog.AddRespStructure(catalog.Catalog{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(getCatalog)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
