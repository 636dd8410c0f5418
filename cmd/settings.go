package cmd

import (
	"strings"
	"time"
)

const (
	DefaultApiUrl        = "http://localhost:8000/api/v1/executions"
	DefaultPollInterval  = 1 * time.Second
	DefaultMaxWait       = 120 * time.Second
	DefaultMaxUserMsgLen = 2000
)

// Settings is the runtime-mutable client configuration. It lives behind a
// tools.Mutexed and is read as a whole snapshot at the start of each job, so
// submit, poll and result fetch of one job always agree on endpoint and
// headers. Mutators must replace the Headers map, never write into it: old
// snapshots keep referring to the previous map.
type Settings struct {
	ApiUrl        string
	ApiBase       string
	Headers       map[string]string
	PollInterval  time.Duration
	MaxWait       time.Duration
	MaxUserMsgLen int
}

func DefaultSettings() Settings {
	return Settings{
		ApiUrl:  DefaultApiUrl,
		ApiBase: DeriveApiBase(DefaultApiUrl),
		Headers: map[string]string{
			"Content-Type": "application/json",
			"Accept":       "application/json",
		},
		PollInterval:  DefaultPollInterval,
		MaxWait:       DefaultMaxWait,
		MaxUserMsgLen: DefaultMaxUserMsgLen,
	}
}

// DeriveApiBase strips a trailing /executions segment so status, result and
// health URLs can be built next to the creation endpoint.
func DeriveApiBase(apiUrl string) string {
	return strings.TrimSuffix(apiUrl, "/executions")
}

func (s Settings) StatusUrl(executionId string) string {
	return s.ApiBase + "/executions/" + executionId + "/status"
}

func (s Settings) ResultUrl(executionId string) string {
	return s.ApiBase + "/executions/" + executionId
}

func (s Settings) HealthUrl() string {
	return s.ApiBase + "/health"
}

// HeadersForGet returns the configured headers without Content-Type, which
// only belongs on bodied requests.
func (s Settings) HeadersForGet() map[string]string {
	headers := make(map[string]string, len(s.Headers))
	for k, v := range s.Headers {
		if strings.EqualFold(k, "Content-Type") {
			continue
		}
		headers[k] = v
	}
	return headers
}
