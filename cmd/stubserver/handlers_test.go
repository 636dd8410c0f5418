package main

import (
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"relay/backend"
	"relay/cmd"
	"relay/tools"
)

func newTestConnection(delay time.Duration) *connection {
	return &connection{
		executions: tools.CreateMutexed(map[string]*execution{}),
		logger:     log.New(io.Discard, "", 0),
		delay:      delay,
	}
}

func TestSubmitRequiresGoal(t *testing.T) {
	c := newTestConnection(0)
	srv := httptest.NewServer(c.newRouter())
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/v1/executions", "application/json", strings.NewReader(`{}`))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "goal is required")
}

func TestUnknownExecutionId(t *testing.T) {
	c := newTestConnection(0)
	srv := httptest.NewServer(c.newRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/executions/nope/status")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	c := newTestConnection(0)
	srv := httptest.NewServer(c.newRouter())
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/v1/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestExecutionLifecycle(t *testing.T) {
	c := newTestConnection(20 * time.Millisecond)
	srv := httptest.NewServer(c.newRouter())
	defer srv.Close()

	resp, err := http.Post(
		srv.URL+"/api/v1/executions",
		"application/json",
		strings.NewReader(`{"goal":"hi","user_id":7,"max_depth":1}`),
	)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	var submitResp cmd.SubmitResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&submitResp))
	require.NotEmpty(t, submitResp.ExecutionId)

	statusUrl := srv.URL + "/api/v1/executions/" + submitResp.ExecutionId + "/status"
	require.Eventually(t, func() bool {
		statusResp, err := http.Get(statusUrl)
		if err != nil {
			return false
		}
		defer statusResp.Body.Close()
		var snapshot cmd.StatusSnapshot
		if json.NewDecoder(statusResp.Body).Decode(&snapshot) != nil {
			return false
		}
		return cmd.IsTerminalStatus(snapshot.Status)
	}, time.Second, 5*time.Millisecond)

	resultResp, err := http.Get(srv.URL + "/api/v1/executions/" + submitResp.ExecutionId)
	require.NoError(t, err)
	defer resultResp.Body.Close()

	var payload cmd.ResultPayload
	require.NoError(t, json.NewDecoder(resultResp.Body).Decode(&payload))
	assert.Equal(t, "completed", payload.Status)
	assert.Contains(t, string(payload.FinalResult), "Echo from stub backend: hi")
}

// Status reads must stay safe while the completion goroutine flips the
// execution, which happens on every poll during the delay window.
func TestLookupDuringCompletion(t *testing.T) {
	c := newTestConnection(5 * time.Millisecond)
	c.executions.Modify(func(m *map[string]*execution) {
		(*m)["job"] = &execution{status: "running"}
	})

	var wg tools.WorkGroup
	wg.Spawn(func() {
		c.complete("job", "hi")
	})
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		exec, ok := c.lookup("job")
		require.True(t, ok)
		if exec.status == "completed" {
			break
		}
	}
	wg.Wait()

	exec, ok := c.lookup("job")
	require.True(t, ok)
	assert.Equal(t, "completed", exec.status)
	assert.Contains(t, exec.finalResult.(map[string]any)["result"], "Echo from stub backend: hi")
}

// The stub server and the real client agree on the wire format end to end.
func TestClientAgainstStub(t *testing.T) {
	c := newTestConnection(20 * time.Millisecond)
	srv := httptest.NewServer(c.newRouter())
	defer srv.Close()

	settings := tools.CreateMutexed(cmd.Settings{
		ApiUrl:       srv.URL + "/api/v1/executions",
		ApiBase:      cmd.DeriveApiBase(srv.URL + "/api/v1/executions"),
		Headers:      map[string]string{"Content-Type": "application/json"},
		PollInterval: 10 * time.Millisecond,
		MaxWait:      2 * time.Second,
	})
	client := backend.NewClient(&settings, log.New(io.Discard, "", 0))

	text := client.RunJobText(context.Background(), "round trip", 42)
	assert.Equal(t, "Echo from stub backend: round trip", text)
}
