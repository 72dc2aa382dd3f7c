// Package apiclient calls the toolbox /api endpoints and turns their
// responses into typed values. Any non-2xx response becomes an *Error
// carrying a human-readable message.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"golang.org/x/sync/singleflight"

	"github.com/playperu/apitoolbox/internal/toolbox"
)

const (
	apiPrefix = "/api"

	defaultTimeout   = 30 * time.Second
	defaultQRCodeURL = "https://api.qrserver.com/v1/create-qr-code/"
	qrCodeSize       = "250x250"
)

// ErrEmptyQRData is returned by QRCodeURL for blank input.
var ErrEmptyQRData = errors.New("qr code data is empty")

// Error is a non-2xx response from the toolbox API.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string { return e.Message }

type Option func(*Client)

// WithHTTPClient replaces the default client, which times out after 30s.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithQRCodeURL points QRCodeURL at another qrserver-compatible endpoint.
func WithQRCodeURL(u string) Option {
	return func(c *Client) { c.qrCodeURL = u }
}

type Client struct {
	baseURL    string
	qrCodeURL  string
	httpClient *http.Client

	// inflight collapses concurrent identical GETs into one request.
	inflight singleflight.Group
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		qrCodeURL:  defaultQRCodeURL,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// reply is a fully read response, shared between deduplicated callers.
type reply struct {
	status int
	body   []byte
}

func (r *reply) ok() bool { return r.status >= 200 && r.status < 300 }

// resource names the thing being fetched in fallback error messages.
type resource struct {
	name string
	// preferData uses a string details.data as the message when present.
	preferData bool
}

var (
	definitionResource  = resource{name: "definition"}
	translationResource = resource{name: "translation"}
	prayerResource      = resource{name: "prayer times", preferData: true}
	qiblaResource       = resource{name: "Qibla direction", preferData: true}
	riddleResource      = resource{name: "riddle"}
	gamesResource       = resource{name: "free-to-play games"}
)

// FetchDefinition looks up an English word.
func (c *Client) FetchDefinition(ctx context.Context, word string) ([]toolbox.DictionaryEntry, error) {
	var out []toolbox.DictionaryEntry
	err := c.get(ctx, "/dictionary/define/"+url.PathEscape(word), nil, definitionResource, &out)
	return out, err
}

// FetchTranslation requests a mock translation.
func (c *Client) FetchTranslation(ctx context.Context, word, targetLanguage string) (*toolbox.TranslationResult, error) {
	body, err := json.Marshal(toolbox.TranslateRequest{Word: word, TargetLanguage: targetLanguage})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/dictionary/translate", nil), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	rep, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var out toolbox.TranslationResult
	if err := decode(rep, translationResource, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchPrayerTimes fetches today's timings using the default method.
func (c *Client) FetchPrayerTimes(ctx context.Context, city, country string) (*toolbox.PrayerTimesResponse, error) {
	q := url.Values{}
	q.Set("city", city)
	q.Set("country", country)

	var out toolbox.PrayerTimesResponse
	if err := c.get(ctx, "/prayer-times", q, prayerResource, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchQiblaDirection(ctx context.Context, latitude, longitude float64) (*toolbox.QiblaResponse, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(latitude, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(longitude, 'f', -1, 64))

	var out toolbox.QiblaResponse
	if err := c.get(ctx, "/qibla-direction", q, qiblaResource, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) FetchRiddle(ctx context.Context) (*toolbox.Riddle, error) {
	var out toolbox.Riddle
	if err := c.get(ctx, "/riddle", nil, riddleResource, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// FetchFreeToPlayGames lists games. Empty filter fields are not sent.
func (c *Client) FetchFreeToPlayGames(ctx context.Context, f toolbox.GameFilter) ([]toolbox.FreeToGameEntry, error) {
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

	var out []toolbox.FreeToGameEntry
	err := c.get(ctx, "/free-games", q, gamesResource, &out)
	return out, err
}

// QRCodeURL returns the image URL of a 250x250 PNG QR code for data. The
// image is rendered by the QR service; nothing is fetched here.
func (c *Client) QRCodeURL(data string) (string, error) {
	data = strings.TrimSpace(data)
	if data == "" {
		return "", ErrEmptyQRData
	}

	q := url.Values{}
	q.Set("data", data)
	q.Set("size", qrCodeSize)
	q.Set("format", "png")
	return c.qrCodeURL + "?" + q.Encode(), nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + apiPrefix + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// get performs a deduplicated GET and decodes the result into out. Each
// caller waits on its own ctx. The shared request is detached from the
// first caller's cancellation and bounded by the HTTP client timeout.
func (c *Client) get(ctx context.Context, path string, q url.Values, res resource, out any) error {
	u := c.endpoint(path, q)
	shared := context.WithoutCancel(ctx)

	ch := c.inflight.DoChan(u, func() (any, error) {
		req, err := http.NewRequestWithContext(shared, http.MethodGet, u, nil)
		if err != nil {
			return nil, fmt.Errorf("building request: %w", err)
		}
		return c.do(req)
	})

	select {
	case <-ctx.Done():
		return ctx.Err()
	case r := <-ch:
		if r.Err != nil {
			return r.Err
		}
		return decode(r.Val.(*reply), res, out)
	}
}

func (c *Client) do(req *http.Request) (*reply, error) {
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}
	return &reply{status: resp.StatusCode, body: body}, nil
}

func decode(rep *reply, res resource, out any) error {
	if !rep.ok() {
		return failure(rep, res)
	}
	if err := json.Unmarshal(rep.body, out); err != nil {
		return fmt.Errorf("decoding %s: %w", res.name, err)
	}
	return nil
}

func failure(rep *reply, res resource) *Error {
	apiErr, ok := decodeAPIError(rep.body)
	if !ok {
		return &Error{StatusCode: rep.status, Message: "Failed to fetch " + res.name + ". Unknown error."}
	}

	if res.preferData {
		if d := gjson.GetBytes(apiErr.Details, "data"); d.Type == gjson.String && d.Str != "" {
			return &Error{StatusCode: rep.status, Message: d.Str}
		}
	}
	if apiErr.Message != "" {
		return &Error{StatusCode: rep.status, Message: apiErr.Message}
	}
	return &Error{StatusCode: rep.status, Message: "Failed to fetch " + res.name}
}

// decodeAPIError reads an error envelope on a best-effort basis. It
// reports false only when the body is not JSON at all; a parse failure
// never escapes.
func decodeAPIError(body []byte) (*toolbox.APIError, bool) {
	if !gjson.ValidBytes(body) {
		return nil, false
	}

	r := gjson.ParseBytes(body)
	e := &toolbox.APIError{}
	if m := r.Get("message"); m.Type == gjson.String {
		e.Message = m.Str
	}
	if d := r.Get("details"); d.Exists() {
		e.Details = json.RawMessage(d.Raw)
	}
	return e, true
}
