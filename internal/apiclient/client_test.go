package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/playperu/apitoolbox/internal/apiclient"
	"github.com/playperu/apitoolbox/internal/toolbox"
)

func newAPI(t *testing.T, h http.HandlerFunc) (*apiclient.Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL + "/"), srv
}

func reply(status int, body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}
}

func requireAPIError(t *testing.T, err error) *apiclient.Error {
	t.Helper()
	var apiErr *apiclient.Error
	require.True(t, errors.As(err, &apiErr), "error %v is not *apiclient.Error", err)
	return apiErr
}

func TestFetchDefinition(t *testing.T) {
	var gotPath string
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		reply(http.StatusOK, `[{"word":"ice cream","phonetics":[],"meanings":[{"partOfSpeech":"noun","definitions":[{"definition":"A frozen dessert.","synonyms":[],"antonyms":[]}],"synonyms":[],"antonyms":[]}],"license":{"name":"CC BY-SA 3.0","url":"https://creativecommons.org/licenses/by-sa/3.0"},"sourceUrls":[]}]`)(w, r)
	})

	entries, err := c.FetchDefinition(context.Background(), "ice cream")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "/api/dictionary/define/ice%20cream", gotPath)
	assert.Equal(t, "ice cream", entries[0].Word)
	assert.Equal(t, "A frozen dessert.", entries[0].Meanings[0].Definitions[0].Definition)
}

func TestFailureMessages(t *testing.T) {
	tests := []struct {
		name   string
		call   func(c *apiclient.Client) error
		body   string
		want   string
		status int
	}{
		{
			name: "definition envelope",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchDefinition(context.Background(), "qwxz")
				return err
			},
			body:   `{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for."}`,
			want:   "Sorry pal, we couldn't find definitions for the word you were looking for.",
			status: http.StatusNotFound,
		},
		{
			name: "definition unparseable body",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchDefinition(context.Background(), "x")
				return err
			},
			body:   `<html>gateway</html>`,
			want:   "Failed to fetch definition. Unknown error.",
			status: http.StatusNotFound,
		},
		{
			name: "riddle empty message",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchRiddle(context.Background())
				return err
			},
			body:   `{"message":""}`,
			want:   "Failed to fetch riddle",
			status: http.StatusNotFound,
		},
		{
			name: "riddle ignores details data",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchRiddle(context.Background())
				return err
			},
			body:   `{"message":"Received malformed data from external riddle source.","details":{"data":"ignored"}}`,
			want:   "Received malformed data from external riddle source.",
			status: http.StatusNotFound,
		},
		{
			name: "prayer times prefers details data",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchPrayerTimes(context.Background(), "Nowhere", "Atlantis")
				return err
			},
			body:   `{"message":"Bad Request","details":{"code":400,"data":"Unable to locate city and country"}}`,
			want:   "Unable to locate city and country",
			status: http.StatusNotFound,
		},
		{
			name: "prayer times non-string details data",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchPrayerTimes(context.Background(), "Nowhere", "Atlantis")
				return err
			},
			body:   `{"message":"Bad Request","details":{"data":{"reason":"x"}}}`,
			want:   "Bad Request",
			status: http.StatusNotFound,
		},
		{
			name: "qibla prefers details data",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchQiblaDirection(context.Background(), 91, 0)
				return err
			},
			body:   `{"message":"Error fetching Qibla direction","details":{"data":"Latitude out of range"}}`,
			want:   "Latitude out of range",
			status: http.StatusNotFound,
		},
		{
			name: "games unknown error",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchFreeToPlayGames(context.Background(), toolbox.GameFilter{})
				return err
			},
			body:   ``,
			want:   "Failed to fetch free-to-play games. Unknown error.",
			status: http.StatusNotFound,
		},
		{
			name: "translation envelope",
			call: func(c *apiclient.Client) error {
				_, err := c.FetchTranslation(context.Background(), "hi", "xx")
				return err
			},
			body:   `{"message":"Mock translation to 'xx' is not supported."}`,
			want:   "Mock translation to 'xx' is not supported.",
			status: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newAPI(t, reply(tt.status, tt.body))

			apiErr := requireAPIError(t, tt.call(c))
			assert.Equal(t, tt.want, apiErr.Message)
			assert.Equal(t, tt.status, apiErr.StatusCode)
		})
	}
}

func TestFetchTranslation(t *testing.T) {
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/dictionary/translate", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req toolbox.TranslateRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, toolbox.TranslateRequest{Word: "hello", TargetLanguage: "fr"}, req)

		reply(http.StatusOK, `{"translatedText":"(Mock) \"hello\" translated to French would be: \"hello_fr\"."}`)(w, r)
	})

	got, err := c.FetchTranslation(context.Background(), "hello", "fr")
	require.NoError(t, err)
	assert.Equal(t, `(Mock) "hello" translated to French would be: "hello_fr".`, got.TranslatedText)
}

func TestFetchPrayerTimes(t *testing.T) {
	var gotQuery url.Values
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		reply(http.StatusOK, `{"code":200,"status":"OK","data":{"timings":{"Fajr":"05:12","Isha":"21:40"},"meta":{"timezone":"Europe/Paris"}}}`)(w, r)
	})

	got, err := c.FetchPrayerTimes(context.Background(), "Paris", "France")
	require.NoError(t, err)
	assert.Equal(t, "Paris", gotQuery.Get("city"))
	assert.Equal(t, "France", gotQuery.Get("country"))
	assert.Equal(t, "05:12", got.Data.Timings.Fajr)
	assert.Equal(t, "Europe/Paris", got.Data.Meta.Timezone)
}

func TestFetchQiblaDirection(t *testing.T) {
	var gotQuery string
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		reply(http.StatusOK, `{"code":200,"status":"OK","data":{"latitude":51.5074,"longitude":-0.1278,"direction":118.987}}`)(w, r)
	})

	got, err := c.FetchQiblaDirection(context.Background(), 51.5074, -0.1278)
	require.NoError(t, err)
	assert.Equal(t, "latitude=51.5074&longitude=-0.1278", gotQuery)
	assert.InDelta(t, 118.987, got.Data.Direction, 1e-9)
}

func TestFetchFreeToPlayGames(t *testing.T) {
	var gotQuery url.Values
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		reply(http.StatusOK, `[{"id":540,"title":"Overwatch 2","genre":"Shooter","platform":"PC (Windows)"}]`)(w, r)
	})

	games, err := c.FetchFreeToPlayGames(context.Background(), toolbox.GameFilter{Platform: "pc", SortBy: "popularity"})
	require.NoError(t, err)
	require.Len(t, games, 1)
	assert.Equal(t, "Overwatch 2", games[0].Title)
	assert.Equal(t, "pc", gotQuery.Get("platform"))
	assert.Equal(t, "popularity", gotQuery.Get("sort-by"))
	assert.NotContains(t, gotQuery, "category")
}

func TestFetchRiddle(t *testing.T) {
	c, _ := newAPI(t, reply(http.StatusOK, `{"riddle":"What has keys but can't open locks?","answer":"A piano"}`))

	got, err := c.FetchRiddle(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "A piano", got.Answer)
}

func TestConcurrentGetsShareOneRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		reply(http.StatusOK, `{"riddle":"r","answer":"a"}`)(w, r)
	})

	const callers = 5
	var wg sync.WaitGroup
	results := make([]*toolbox.Riddle, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r, err := c.FetchRiddle(context.Background())
			assert.NoError(t, err)
			results[i] = r
		}()
	}

	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), hits.Load())
	for _, r := range results {
		require.NotNil(t, r)
		assert.Equal(t, "a", r.Answer)
	}
	// Each caller decodes its own value.
	assert.NotSame(t, results[0], results[1])
}

func TestCancelledCallerDoesNotFailSharedRequest(t *testing.T) {
	var hits atomic.Int32
	release := make(chan struct{})
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		<-release
		reply(http.StatusOK, `{"riddle":"r","answer":"a"}`)(w, r)
	})

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := c.FetchRiddle(firstCtx)
		firstErr <- err
	}()
	require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)

	type result struct {
		riddle *toolbox.Riddle
		err    error
	}
	second := make(chan result, 1)
	go func() {
		r, err := c.FetchRiddle(context.Background())
		second <- result{r, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	assert.ErrorIs(t, <-firstErr, context.Canceled)

	close(release)
	got := <-second
	require.NoError(t, got.err)
	assert.Equal(t, "a", got.riddle.Answer)
	assert.Equal(t, int32(1), hits.Load())
}

func TestCallerContextBoundsWait(t *testing.T) {
	release := make(chan struct{})
	c, _ := newAPI(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	})
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := c.FetchRiddle(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestQRCodeURL(t *testing.T) {
	c := apiclient.New("http://localhost:8080")

	got, err := c.QRCodeURL("  https://example.com/?a=1&b=2  ")
	require.NoError(t, err)

	u, err := url.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, "api.qrserver.com", u.Host)
	assert.Equal(t, "/v1/create-qr-code/", u.Path)
	assert.Equal(t, "https://example.com/?a=1&b=2", u.Query().Get("data"))
	assert.Equal(t, "250x250", u.Query().Get("size"))
	assert.Equal(t, "png", u.Query().Get("format"))

	_, err = c.QRCodeURL("   ")
	assert.ErrorIs(t, err, apiclient.ErrEmptyQRData)
}

func TestQRCodeURLOverride(t *testing.T) {
	c := apiclient.New("http://localhost:8080", apiclient.WithQRCodeURL("http://qr.local/render"))

	got, err := c.QRCodeURL("hi")
	require.NoError(t, err)
	assert.Equal(t, "http://qr.local/render?data=hi&format=png&size=250x250", got)
}
