package cmd

import (
	"encoding/json"
	"strings"
)

// JobRequest is the execution-creation body. Built fresh per user message
// and never reused after it has been sent.
type JobRequest struct {
	Goal            string         `json:"goal"`
	UserId          int64          `json:"user_id"`
	MaxDepth        int            `json:"max_depth"`
	ConfigOverrides map[string]any `json:"config_overrides"`
}

func NewJobRequest(goal string, userId int64) JobRequest {
	return JobRequest{
		Goal:     goal,
		UserId:   userId,
		MaxDepth: 1,
		ConfigOverrides: map[string]any{
			"observability": map[string]any{
				"mlflow": map[string]any{"enabled": false},
			},
		},
	}
}

type SubmitResponse struct {
	ExecutionId string `json:"execution_id"`
}

type StatusSnapshot struct {
	Status string `json:"status"`
}

// ResultPayload keeps final_result raw: the backend may send a string, an
// object, null, or something else entirely.
type ResultPayload struct {
	Status      string          `json:"status"`
	FinalResult json.RawMessage `json:"final_result,omitempty"`
}

var terminalStatuses = map[string]struct{}{
	"completed": {},
	"failed":    {},
	"timeout":   {},
	"timed_out": {},
	"cancelled": {},
}

// IsTerminalStatus reports whether status marks an execution that will not
// change state anymore. Case-insensitive.
func IsTerminalStatus(status string) bool {
	_, ok := terminalStatuses[strings.ToLower(status)]
	return ok
}
