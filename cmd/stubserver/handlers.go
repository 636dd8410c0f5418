package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"relay/cmd"
	"relay/common"
)

func (c *connection) newRouter() *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc("/api/v1/executions", c.handleSubmit).Methods(http.MethodPost)
	router.HandleFunc("/api/v1/executions/{id}/status", c.handleGetStatus).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/executions/{id}", c.handleGetResult).Methods(http.MethodGet)
	router.HandleFunc("/api/v1/health", c.handleHealth).Methods(http.MethodGet)
	return router
}

func (c *connection) handleSubmit(resp http.ResponseWriter, req *http.Request) {
	var jobReq cmd.JobRequest
	if err := json.NewDecoder(req.Body).Decode(&jobReq); err != nil {
		c.returnErrorStr(resp, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if jobReq.Goal == "" {
		c.returnErrorStr(resp, http.StatusBadRequest, "goal is required")
		return
	}

	id := common.GetRandomId()
	c.executions.Modify(func(m *map[string]*execution) {
		(*m)[id] = &execution{status: "running"}
	})
	c.wg.Spawn(func() {
		c.complete(id, jobReq.Goal)
	})
	c.logger.Printf("accepted execution %s (user %d)", id, jobReq.UserId)

	c.writeJson(resp, http.StatusAccepted, &cmd.SubmitResponse{ExecutionId: id})
}

// complete flips the execution to its terminal state after the configured
// delay, echoing the goal back as the result.
func (c *connection) complete(id string, goal string) {
	time.Sleep(c.delay)
	c.executions.Modify(func(m *map[string]*execution) {
		exec := (*m)[id]
		exec.status = "completed"
		exec.finalResult = map[string]any{
			"result": fmt.Sprintf("Echo from stub backend: %s", goal),
			"status": "COMPLETED",
		}
	})
	c.logger.Printf("execution %s completed", id)
}

func (c *connection) handleGetStatus(resp http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	exec, ok := c.lookup(id)
	if !ok {
		c.returnErrorStr(resp, http.StatusNotFound, "execution id not found")
		return
	}
	c.writeJson(resp, http.StatusOK, &cmd.StatusSnapshot{Status: exec.status})
}

func (c *connection) handleGetResult(resp http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	exec, ok := c.lookup(id)
	if !ok {
		c.returnErrorStr(resp, http.StatusNotFound, "execution id not found")
		return
	}
	c.writeJson(resp, http.StatusOK, map[string]any{
		"status":       exec.status,
		"final_result": exec.finalResult,
	})
}

func (c *connection) handleHealth(resp http.ResponseWriter, _ *http.Request) {
	c.writeJson(resp, http.StatusOK, map[string]string{"status": "ok"})
}
