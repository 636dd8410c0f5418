package main

import (
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay/backend"
	"relay/cmd"
	"relay/tools"
)

func newTestApp(apiUrl string) *botApp {
	settings := cmd.DefaultSettings()
	if apiUrl != "" {
		settings.ApiUrl = apiUrl
		settings.ApiBase = cmd.DeriveApiBase(apiUrl)
	}
	mutexed := tools.CreateMutexed(settings)
	logger := log.New(io.Discard, "", 0)
	return &botApp{
		settings: &mutexed,
		client:   backend.NewClient(&mutexed, logger),
		logger:   logger,
	}
}

func TestCommandReply_Static(t *testing.T) {
	app := newTestApp("")
	assert.Equal(t, msgStart, app.commandReply("start", ""))
	assert.Equal(t, msgHelp, app.commandReply("help", ""))
	assert.Equal(t, msgPrivacy, app.commandReply("privacy", ""))
	assert.Equal(t, msgUnknownCmd, app.commandReply("doesnotexist", ""))
}

func TestCommandReply_Show(t *testing.T) {
	app := newTestApp("")
	reply := app.commandReply("show", "")
	assert.Contains(t, reply, cmd.DefaultApiUrl)
	assert.Contains(t, reply, "application/json")
}

func TestSetUrl(t *testing.T) {
	app := newTestApp("")
	assert.Equal(t, msgSetUrlUsage, app.commandReply("seturl", ""))

	reply := app.commandReply("seturl", "http://other:9000/api/v1/executions")
	assert.Contains(t, reply, "http://other:9000/api/v1/executions")
	assert.Contains(t, reply, "base: http://other:9000/api/v1")

	snap := app.settings.Get()
	assert.Equal(t, "http://other:9000/api/v1/executions", snap.ApiUrl)
	assert.Equal(t, "http://other:9000/api/v1", snap.ApiBase)
}

func TestSetHeaders(t *testing.T) {
	app := newTestApp("")
	assert.Equal(t, msgSetHeadersUsage, app.commandReply("setheaders", ""))
	assert.Equal(t, msgSetHeadersErr, app.commandReply("setheaders", "not json"))
	assert.Equal(t, msgSetHeadersErr, app.commandReply("setheaders", `["a"]`))

	// Snapshots taken before the update must keep the old map.
	before := app.settings.Get()

	reply := app.commandReply("setheaders", `{"Authorization":"Bearer tok"}`)
	assert.Contains(t, reply, "Bearer tok")

	after := app.settings.Get()
	assert.Equal(t, "Bearer tok", after.Headers["Authorization"])
	assert.NotContains(t, before.Headers, "Authorization")
}

func TestRawReply(t *testing.T) {
	app := newTestApp("")
	assert.Equal(t, msgRawUsage, app.commandReply("raw", ""))
	assert.Contains(t, app.commandReply("raw", "{broken"), "JSON parse error")
	assert.Contains(t, app.commandReply("raw", "null"), "JSON parse error")

	srv := httptest.NewServer(http.HandlerFunc(func(resp http.ResponseWriter, req *http.Request) {
		require.Equal(t, http.MethodPost, req.Method)
		resp.WriteHeader(http.StatusAccepted)
		_, _ = resp.Write([]byte(`{"execution_id":"xyz"}`))
	}))
	defer srv.Close()

	app = newTestApp(srv.URL + "/api/v1/executions")
	reply := app.commandReply("raw", `{"goal":"hello","max_depth":1}`)
	assert.Contains(t, reply, "Status: 202")
	assert.Contains(t, reply, `"execution_id": "xyz"`)
}

func TestPingReply(t *testing.T) {
	handler := http.NewServeMux()
	handler.HandleFunc("/api/v1/health", func(resp http.ResponseWriter, _ *http.Request) {
		_, _ = resp.Write([]byte(`{"status":"ok"}`))
	})
	srv := httptest.NewServer(handler)
	defer srv.Close()

	app := newTestApp(srv.URL + "/api/v1/executions")
	reply := app.commandReply("ping", "")
	assert.Contains(t, reply, "Ping OK")
	assert.Contains(t, reply, "Status: 200")
}

func TestSoftTrim(t *testing.T) {
	text, warn := softTrim("short", 10)
	assert.Equal(t, "short", text)
	assert.Empty(t, warn)

	long := strings.Repeat("a", 11)
	text, warn = softTrim(long, 10)
	assert.Equal(t, long[:10], text)
	assert.Contains(t, warn, "10")

	// Multibyte input is cut on rune boundaries, never mid-character.
	multibyte := strings.Repeat("é", 11)
	text, warn = softTrim(multibyte, 10)
	assert.Equal(t, strings.Repeat("é", 10), text)
	assert.True(t, utf8.ValidString(text))
	assert.NotEmpty(t, warn)
}
