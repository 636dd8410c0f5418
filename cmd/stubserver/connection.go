package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"relay/common"
	"relay/tools"
)

type execution struct {
	status      string
	finalResult any
}

type connection struct {
	executions tools.Mutexed[map[string]*execution]
	logger     *log.Logger
	delay      time.Duration
	wg         tools.WorkGroup
}

func CreateErrResponse(errMsg string) []byte {
	type Err struct {
		Error string `json:"error"`
	}
	data, e := json.Marshal(&Err{Error: errMsg})
	tools.HandlePanic(e)
	return data
}

func (c *connection) returnErrorStr(
	resp http.ResponseWriter,
	status int,
	errMsg string,
) {
	if status == http.StatusInternalServerError {
		c.logger.Printf("Error: %s", errMsg)
	}
	resp.WriteHeader(status)
	_, err := resp.Write(CreateErrResponse(errMsg))
	common.HandleErrLog(err, c.logger)
}

func (c *connection) writeJson(resp http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	tools.HandlePanic(err)
	resp.Header().Set("Content-Type", "application/json")
	resp.WriteHeader(status)
	_, err = resp.Write(data)
	common.HandleErrLog(err, c.logger)
}

// lookup copies the execution while the lock is held: complete mutates the
// shared struct under the same lock, so the copy must not happen after
// Modify returns.
func (c *connection) lookup(id string) (found execution, ok bool) {
	c.executions.Modify(func(m *map[string]*execution) {
		if exec := (*m)[id]; exec != nil {
			found = *exec
			ok = true
		}
	})
	return found, ok
}
