package server

import (
	"encoding/json"
	"net/http"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeRawJSON writes an upstream payload without re-encoding it.
func writeRawJSON(w http.ResponseWriter, status int, data json.RawMessage) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// writeError writes err as an error envelope, or as the upstream body it
// carries, byte for byte. Anything that is not a *toolbox.Error is
// reported as a bare 500.
func writeError(w http.ResponseWriter, err error) {
	e, ok := toolbox.AsError(err)
	if !ok {
		e = toolbox.Internal("Internal server error", err)
	}
	if body := e.Body(); len(body) > 0 {
		writeRawJSON(w, e.Status, body)
		return
	}
	writeJSON(w, e.Status, e)
}

// respond finishes a proxied request with either its payload or its error.
func respond(w http.ResponseWriter, payload json.RawMessage, err error) {
	if err != nil {
		writeError(w, err)
		return
	}
	writeRawJSON(w, http.StatusOK, payload)
}
