package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(vars map[string]string) func(string) string {
	return func(k string) string { return vars[k] }
}

func TestRunRiddle(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/riddle", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"riddle":"What gets wetter as it dries?","answer":"A towel"}`)
	}))
	defer api.Close()

	var out bytes.Buffer
	err := run(context.Background(), []string{"toolbox", "riddle"}, env(map[string]string{"TOOLBOX_URL": api.URL}), &out)
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"answer": "A towel"`)
}

func TestRunGamesDropsAllFilter(t *testing.T) {
	var gotQuery string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		_, _ = io.WriteString(w, `[]`)
	}))
	defer api.Close()

	var out bytes.Buffer
	err := run(context.Background(), []string{"toolbox", "--url", api.URL, "games", "-p", "all", "-c", "shooter"}, env(nil), &out)
	require.NoError(t, err)
	assert.Equal(t, "category=shooter", gotQuery)
}

func TestRunAPIError(t *testing.T) {
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = io.WriteString(w, `{"title":"No Definitions Found","message":"Sorry pal, we couldn't find definitions for the word you were looking for."}`)
	}))
	defer api.Close()

	err := run(context.Background(), []string{"toolbox", "define", "-w", "qwxz"}, env(map[string]string{"TOOLBOX_URL": api.URL}), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Sorry pal")
}

func TestRunQR(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"toolbox", "qr", "-d", "hello world"}, env(nil), &out)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out.String(), "https://api.qrserver.com/v1/create-qr-code/?data=hello+world"))
}

func TestRunQRUsesConfiguredEndpoint(t *testing.T) {
	var out bytes.Buffer
	err := run(context.Background(), []string{"toolbox", "qr", "-d", "hi"}, env(map[string]string{"QR_API_URL": "http://qr.local/render"}), &out)
	require.NoError(t, err)
	assert.Equal(t, "http://qr.local/render?data=hi&format=png&size=250x250\n", out.String())
}

func TestRunTimeout(t *testing.T) {
	release := make(chan struct{})
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer api.Close()
	defer close(release)

	err := run(context.Background(), []string{"toolbox", "--timeout", "50ms", "riddle"}, env(map[string]string{"TOOLBOX_URL": api.URL}), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Client.Timeout")
}

func TestRunRejectsBadTimeout(t *testing.T) {
	err := run(context.Background(), []string{"toolbox", "--timeout", "soon", "riddle"}, env(nil), io.Discard)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--timeout")
}

func TestRunRejectsUnknownLanguage(t *testing.T) {
	err := run(context.Background(), []string{"toolbox", "translate", "-w", "hi", "-l", "xx"}, env(nil), io.Discard)
	assert.Error(t, err)
}
