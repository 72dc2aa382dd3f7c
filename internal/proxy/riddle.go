package proxy

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tidwall/gjson"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

// Riddle fetches a random riddle. The payload is passed through only when
// both riddle and answer are strings.
func (s *Service) Riddle(ctx context.Context) (json.RawMessage, error) {
	resp, err := s.get(ctx, s.urls.Riddles+"/random", nil)
	if err != nil {
		s.logTransport(ctx, "riddles", err)
		msg := "Internal server error while fetching riddle."
		if isConnectivityError(err) {
			msg = "Could not connect to the external riddle service. Please check network connectivity."
		}
		return nil, toolbox.Transport(msg, err)
	}

	if !resp.ok() {
		s.logUpstreamStatus(ctx, "riddles", resp)
		return nil, toolbox.Upstream(resp.status, "Error fetching riddle from external source: "+resp.statusText, nil)
	}

	data, ok := resp.json()
	if !ok {
		return nil, toolbox.Internal("Internal server error while fetching riddle.", errInvalidJSON)
	}
	if data.Get("riddle").Type != gjson.String || data.Get("answer").Type != gjson.String {
		s.logger.ErrorContext(ctx, "riddles returned unexpected data format", "body", string(resp.body))
		return nil, toolbox.Upstream(http.StatusBadGateway, "Received malformed data from external riddle source.", nil)
	}
	return resp.body, nil
}
