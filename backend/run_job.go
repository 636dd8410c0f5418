package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"strings"
	"time"

	"relay/cmd"
	"relay/common"
)

const submitBodyLimit = 2000

// RunJob submits prompt as a new execution and waits for its final result.
// All failure modes come back as a tagged Outcome; nothing escapes as a
// panic. Cancellation via ctx is honored between poll iterations.
func (c *Client) RunJob(ctx context.Context, prompt string, userId int64) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			c.logger.Printf("panic while running job: %v\n%s", r, debug.Stack())
			out = Outcome{Kind: Unexpected, Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	snap := c.settings.Get()

	payload, err := json.Marshal(cmd.NewJobRequest(prompt, userId))
	if err != nil {
		return Outcome{Kind: Unexpected, Err: err}
	}
	status, body, err := c.robustDo(ctx, http.MethodPost, snap.ApiUrl, snap.Headers, payload, c.timeouts.submit)
	if err != nil {
		return transportOutcome(ctx, err)
	}
	if status < 200 || status >= 300 {
		return Outcome{
			Kind:       SubmissionRejected,
			StatusCode: status,
			Body:       common.Truncate(string(body), submitBodyLimit),
		}
	}

	var submitResp cmd.SubmitResponse
	// Tolerate undecodable 2xx bodies: they surface as a missing id below.
	_ = json.Unmarshal(body, &submitResp)
	if submitResp.ExecutionId == "" {
		var raw any = map[string]any{}
		if err := json.Unmarshal(body, &raw); err != nil {
			raw = map[string]any{}
		}
		return Outcome{Kind: SubmissionMalformed, Body: common.CompactJSON(raw, submitBodyLimit)}
	}
	executionId := submitResp.ExecutionId
	c.logger.Printf("started execution %s", executionId)

	if out, done := c.pollUntilTerminal(ctx, snap, executionId); done {
		return out
	}
	return c.fetchResult(ctx, snap, executionId)
}

// pollUntilTerminal loops on the status endpoint until a terminal status,
// the wall-clock budget runs out or ctx is canceled. The budget is measured
// with the monotonic clock from the moment polling starts. done reports
// whether out already holds the final outcome.
func (c *Client) pollUntilTerminal(
	ctx context.Context,
	snap cmd.Settings,
	executionId string,
) (out Outcome, done bool) {
	start := time.Now()
	interval := snap.PollInterval
	if interval <= 0 {
		interval = cmd.DefaultPollInterval
	}
	maxWait := snap.MaxWait
	if maxWait <= 0 {
		maxWait = cmd.DefaultMaxWait
	}

	lastStatus := ""
	for {
		status, body, err := c.robustDo(
			ctx, http.MethodGet, snap.StatusUrl(executionId), snap.HeadersForGet(), nil, c.timeouts.status,
		)
		if err != nil {
			return transportOutcome(ctx, err), true
		}
		if status < 200 || status >= 300 {
			return Outcome{
				Kind: NetworkUnreachable,
				Err:  fmt.Errorf("status endpoint returned %d", status),
			}, true
		}
		var snapshot cmd.StatusSnapshot
		if err := json.Unmarshal(body, &snapshot); err != nil {
			return Outcome{Kind: Unexpected, Err: err}, true
		}

		current := strings.ToLower(snapshot.Status)
		if current != lastStatus {
			c.logger.Printf("execution %s status=%s", executionId, current)
			lastStatus = current
		}
		if cmd.IsTerminalStatus(current) {
			return Outcome{}, false
		}
		if time.Since(start) > maxWait {
			named := lastStatus
			if named == "" {
				named = "unknown"
			}
			return Outcome{Kind: PollTimeout, LastStatus: named}, true
		}

		wait := time.NewTimer(interval)
		select {
		case <-ctx.Done():
			wait.Stop()
			return Outcome{Kind: Canceled, Err: ctx.Err()}, true
		case <-wait.C:
		}
	}
}

func (c *Client) fetchResult(ctx context.Context, snap cmd.Settings, executionId string) Outcome {
	status, body, err := c.robustDo(
		ctx, http.MethodGet, snap.ResultUrl(executionId), snap.HeadersForGet(), nil, c.timeouts.result,
	)
	if err != nil {
		return transportOutcome(ctx, err)
	}
	if status < 200 || status >= 300 {
		return Outcome{Kind: NetworkUnreachable, Err: fmt.Errorf("result endpoint returned %d", status)}
	}
	var payload cmd.ResultPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return Outcome{Kind: Unexpected, Err: err}
	}
	if text, ok := ExtractFinalText(payload); ok {
		return Outcome{Kind: Completed, Text: text}
	}

	var finalResult any
	if len(payload.FinalResult) > 0 {
		_ = json.Unmarshal(payload.FinalResult, &finalResult)
	}
	compact := common.CompactJSON(map[string]any{
		"status":       payload.Status,
		"final_result": finalResult,
	}, submitBodyLimit)
	return Outcome{Kind: SuccessNoText, Body: compact}
}

// SubmitRaw posts an arbitrary JSON body to the creation endpoint and hands
// back status and body untouched. Backs the bot's /raw command.
func (c *Client) SubmitRaw(ctx context.Context, body map[string]any) (int, []byte, error) {
	snap := c.settings.Get()
	payload, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}
	return c.robustDo(ctx, http.MethodPost, snap.ApiUrl, snap.Headers, payload, 30*time.Second)
}

// Ping checks the backend health endpoint. Returns the probed URL either way
// so the caller can show it.
func (c *Client) Ping(ctx context.Context) (url string, status int, err error) {
	snap := c.settings.Get()
	url = snap.HealthUrl()
	status, _, err = c.robustDo(ctx, http.MethodGet, url, snap.HeadersForGet(), nil, c.timeouts.health)
	return url, status, err
}
