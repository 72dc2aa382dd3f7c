// Package proxy normalizes the results of the upstream services behind the
// /api endpoints. Every operation makes at most one outbound request and
// resolves to either the upstream payload or a *toolbox.Error, so callers
// never have to branch on upstream-specific failure shapes.
package proxy

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tidwall/gjson"

	"github.com/playperu/apitoolbox/internal/catalog"
)

var errInvalidJSON = errors.New("upstream body is not valid JSON")

// URLs are the upstream base URLs, without trailing slash.
type URLs struct {
	Dictionary string
	Aladhan    string
	FreeToGame string
	Riddles    string
}

type Config struct {
	// HTTPClient performs the outbound calls. It is shared by all
	// operations and must be safe for concurrent use.
	HTTPClient     *http.Client
	URLs           URLs
	Catalog        *catalog.Catalog
	TranslateDelay time.Duration
	Logger         *slog.Logger
}

type Service struct {
	httpClient     *http.Client
	urls           URLs
	catalog        *catalog.Catalog
	translateDelay time.Duration
	logger         *slog.Logger
	validate       *validator.Validate
}

func New(cfg Config) *Service {
	if cfg.HTTPClient == nil {
		cfg.HTTPClient = &http.Client{}
	}
	if cfg.Catalog == nil {
		cfg.Catalog = catalog.Default()
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Service{
		httpClient:     cfg.HTTPClient,
		urls:           trimURLs(cfg.URLs),
		catalog:        cfg.Catalog,
		translateDelay: cfg.TranslateDelay,
		logger:         cfg.Logger,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

func trimURLs(u URLs) URLs {
	return URLs{
		Dictionary: strings.TrimRight(u.Dictionary, "/"),
		Aladhan:    strings.TrimRight(u.Aladhan, "/"),
		FreeToGame: strings.TrimRight(u.FreeToGame, "/"),
		Riddles:    strings.TrimRight(u.Riddles, "/"),
	}
}

// upstreamResponse is a fully read upstream reply.
type upstreamResponse struct {
	status     int
	statusText string
	body       []byte
}

func (r *upstreamResponse) ok() bool {
	return r.status >= 200 && r.status < 300
}

// json parses the body, reporting false when it is not valid JSON.
func (r *upstreamResponse) json() (gjson.Result, bool) {
	if !gjson.ValidBytes(r.body) {
		return gjson.Result{}, false
	}
	return gjson.ParseBytes(r.body), true
}

// get performs the single outbound GET of an operation. Cancellation of
// ctx is not propagated: the call completes or fails on its own.
func (s *Service) get(ctx context.Context, rawURL string, header http.Header) (*upstreamResponse, error) {
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx), http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &upstreamResponse{
		status:     resp.StatusCode,
		statusText: statusText(resp),
		body:       body,
	}, nil
}

// statusText returns the reason phrase of resp, e.g. "Not Found".
func statusText(resp *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
	if text == "" {
		text = http.StatusText(resp.StatusCode)
	}
	return text
}

// isConnectivityError reports whether err means the upstream could not be
// reached at all (DNS, refused connection, dial timeout).
func isConnectivityError(err error) bool {
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func (s *Service) logUpstreamStatus(ctx context.Context, upstream string, resp *upstreamResponse) {
	s.logger.ErrorContext(ctx, "upstream returned error status",
		"upstream", upstream,
		"status", resp.status,
		"body", string(resp.body),
	)
}

func (s *Service) logTransport(ctx context.Context, upstream string, err error) {
	s.logger.ErrorContext(ctx, "upstream request failed", "upstream", upstream, "error", err)
}

// stringField returns the value at path when it is a non-empty JSON string.
func stringField(r gjson.Result, path string) (string, bool) {
	v := r.Get(path)
	if v.Type != gjson.String || v.Str == "" {
		return "", false
	}
	return v.Str, true
}

// present mirrors a truthiness check on a decoded error body: missing,
// null, false, zero and empty string all count as absent.
func present(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.Number:
		return r.Num != 0
	case gjson.String:
		return r.Str != ""
	default:
		return true
	}
}
