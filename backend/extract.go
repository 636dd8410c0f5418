package backend

import (
	"encoding/json"
	"strings"

	"relay/cmd"
	"relay/common"
)

// finalTextKeys is probed in priority order when final_result is an object.
var finalTextKeys = [...]string{"result", "final", "text", "message", "output"}

const extractBodyLimit = 2000

// ExtractFinalText pulls a human-readable answer out of a result payload.
// Known shapes:
//
//	{"status":"completed","final_result":"..."}
//	{"status":"completed","final_result":{"result":"...","status":"COMPLETED"}}
//
// An object without any of the known keys still yields its compacted JSON so
// the caller always has something displayable. Strings are trimmed; empty,
// absent or non-string/non-object values yield ok=false. Pure and
// deterministic.
func ExtractFinalText(payload cmd.ResultPayload) (text string, ok bool) {
	if len(payload.FinalResult) == 0 {
		return "", false
	}
	var v any
	if err := json.Unmarshal(payload.FinalResult, &v); err != nil {
		return "", false
	}
	switch fr := v.(type) {
	case string:
		s := strings.TrimSpace(fr)
		return s, s != ""
	case map[string]any:
		for _, key := range finalTextKeys {
			if s, found := fr[key].(string); found {
				if trimmed := strings.TrimSpace(s); trimmed != "" {
					return trimmed, true
				}
			}
		}
		return common.CompactJSON(fr, extractBodyLimit), true
	default:
		return "", false
	}
}
