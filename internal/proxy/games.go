package proxy

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

// browserUserAgent is sent to FreeToGame, which rejects some requests that
// lack a common browser agent.
const browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// FreeGames lists free-to-play games. Non-empty filters are forwarded
// verbatim. Only an array body is a success; FreeToGame reports bad
// filters as a 200 object carrying status_message.
func (s *Service) FreeGames(ctx context.Context, f toolbox.GameFilter) (json.RawMessage, error) {
	q := url.Values{}
	if f.Platform != "" {
		q.Set("platform", f.Platform)
	}
	if f.Category != "" {
		q.Set("category", f.Category)
	}
	if f.SortBy != "" {
		q.Set("sort-by", f.SortBy)
	}

	u := s.urls.FreeToGame + "/api/games"
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	resp, err := s.get(ctx, u, http.Header{"User-Agent": {browserUserAgent}})
	if err != nil {
		s.logTransport(ctx, "freetogame", err)
		msg := "Internal server error while fetching games."
		if isConnectivityError(err) {
			msg = "Could not connect to the external game service. Please check network connectivity."
		}
		return nil, toolbox.Transport(msg, err)
	}

	if !resp.ok() {
		s.logUpstreamStatus(ctx, "freetogame", resp)
		msg := "Error fetching games from external source: " + resp.statusText
		switch resp.status {
		case http.StatusInternalServerError, http.StatusBadGateway,
			http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			msg = fmt.Sprintf("The game service is temporarily unavailable (Status: %d). Please try again later.", resp.status)
		}
		return nil, toolbox.Upstream(resp.status, msg, nil)
	}

	data, ok := resp.json()
	if !ok {
		return nil, toolbox.Internal("Internal server error while fetching games.", errInvalidJSON)
	}
	if data.IsArray() {
		return resp.body, nil
	}

	if data.IsObject() && data.Get("status_message").Exists() {
		s.logger.ErrorContext(ctx, "freetogame returned an error object with 200", "body", string(resp.body))
		msg, ok := stringField(data, "status_message")
		if !ok {
			msg = "Failed to retrieve games from FreeToGame API due to an unexpected API response."
		}
		return nil, toolbox.Upstream(http.StatusBadRequest, msg, nil)
	}

	s.logger.ErrorContext(ctx, "freetogame returned unexpected data format", "body", string(resp.body))
	return nil, toolbox.Upstream(http.StatusBadGateway, "Received malformed data from external game service.", nil)
}
