package proxy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

const msgDefineInternal = "Internal server error while fetching definition"

// Define looks up word in the dictionary API. The success payload is the
// upstream array of entries, unchanged.
func (s *Service) Define(ctx context.Context, word string) (json.RawMessage, error) {
	if word == "" {
		return nil, toolbox.Validation("Word parameter is required")
	}

	resp, err := s.get(ctx, s.urls.Dictionary+"/api/v2/entries/en/"+url.PathEscape(word), nil)
	if err != nil {
		s.logTransport(ctx, "dictionary", err)
		return nil, toolbox.Transport(msgDefineInternal, err)
	}

	if !resp.ok() {
		s.logUpstreamStatus(ctx, "dictionary", resp)
		return nil, definitionError(resp)
	}

	if _, ok := resp.json(); !ok {
		return nil, toolbox.Internal(msgDefineInternal, errInvalidJSON)
	}
	return resp.body, nil
}

// definitionError maps a non-2xx dictionary reply. A 404 carrying a body
// (the API's "No Definitions Found" document) is passed through verbatim;
// anything else gets a message naming the upstream status, merged with the
// fields of the upstream body.
func definitionError(resp *upstreamResponse) *toolbox.Error {
	msg := "Error fetching definition from external API: " + resp.statusText
	data, ok := resp.json()

	if resp.status == http.StatusNotFound && ok && present(data) {
		if m, ok := stringField(data, "message"); ok {
			msg = m
		}
		return toolbox.UpstreamBody(resp.status, msg, resp.body)
	}

	fields := map[string]json.RawMessage{}
	if ok && data.IsObject() {
		data.ForEach(func(key, value gjson.Result) bool {
			fields[key.Str] = json.RawMessage(value.Raw)
			return true
		})
	}
	if m, ok := stringField(data, "message"); ok {
		msg = m
	}
	fields["message"], _ = json.Marshal(msg)

	body, err := json.Marshal(fields)
	if err != nil {
		return toolbox.Upstream(resp.status, msg, nil)
	}
	return toolbox.UpstreamBody(resp.status, msg, body)
}
