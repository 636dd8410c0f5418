// Package backend talks to the remote execution service: it submits a job,
// polls its status until a terminal state and fetches the final result.
package backend

import (
	"log"
	"net/http"
	"time"

	"relay/cmd"
	"relay/tools"
)

const maxConnsPerHost = 10

type timeouts struct {
	submit time.Duration
	status time.Duration
	result time.Duration
	health time.Duration
}

func defaultTimeouts() timeouts {
	return timeouts{
		submit: 15 * time.Second,
		status: 10 * time.Second,
		result: 15 * time.Second,
		health: 5 * time.Second,
	}
}

// Client runs the submit -> poll -> fetch lifecycle against the backend. It
// is safe for concurrent use: every job reads one settings snapshot up front
// and keeps no state of its own beyond the execution id.
type Client struct {
	settings *tools.Mutexed[cmd.Settings]
	http     *http.Client
	logger   *log.Logger
	timeouts timeouts

	// retryInterval seeds the exponential backoff of robustDo.
	retryInterval time.Duration
}

func NewClient(settings *tools.Mutexed[cmd.Settings], logger *log.Logger) *Client {
	transport := &http.Transport{
		MaxConnsPerHost:     maxConnsPerHost,
		MaxIdleConnsPerHost: maxConnsPerHost,
	}
	return &Client{
		settings:      settings,
		http:          &http.Client{Transport: transport},
		logger:        logger,
		timeouts:      defaultTimeouts(),
		retryInterval: 300 * time.Millisecond,
	}
}
