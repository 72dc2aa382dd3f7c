package proxy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

// DecodeTranslateRequest reads a translate request body. Malformed or
// ill-typed JSON is a validation error.
func DecodeTranslateRequest(r io.Reader) (toolbox.TranslateRequest, error) {
	invalid := toolbox.Validation("Invalid JSON payload for mock translation")

	dec := json.NewDecoder(r)
	var req toolbox.TranslateRequest
	if err := dec.Decode(&req); err != nil {
		return toolbox.TranslateRequest{}, invalid
	}
	// The body must hold exactly one JSON value.
	if err := dec.Decode(&json.RawMessage{}); !errors.Is(err, io.EOF) {
		return toolbox.TranslateRequest{}, invalid
	}
	return req, nil
}

// Translate produces a synthetic translation after a fixed delay. No
// upstream is involved and the delay cannot be cancelled.
func (s *Service) Translate(ctx context.Context, req toolbox.TranslateRequest) (json.RawMessage, error) {
	if err := s.validate.StructCtx(ctx, req); err != nil {
		return nil, toolbox.Validation("Word and targetLanguage are required")
	}

	name, ok := s.catalog.LanguageName(req.TargetLanguage)
	if !ok {
		return nil, toolbox.Validation(fmt.Sprintf("Mock translation to '%s' is not supported.", req.TargetLanguage))
	}

	time.Sleep(s.translateDelay)

	body, err := json.Marshal(toolbox.TranslationResult{
		TranslatedText: fmt.Sprintf(`(Mock) "%s" translated to %s would be: "%s_%s".`,
			req.Word, name, req.Word, req.TargetLanguage),
	})
	if err != nil {
		return nil, toolbox.Internal("Internal server error during mock translation", err)
	}
	return body, nil
}
