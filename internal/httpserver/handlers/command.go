package handlers

import (
	"net/http"

	"github.com/nadalpiantini/tabgrouper/internal/engine"
	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
)

type commandRequest struct {
	Type string `json:"type"`
}

// Command is the typed message entry point the side panels post to. It
// accepts SMART_MERGE and SPLIT_BIG_GROUPS and answers {ok, ...}; an
// unknown type is {ok:false}, not an HTTP error, matching what message
// callers expect.
func Command(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req commandRequest
		if !decodeBody(w, r, &req) {
			return
		}

		switch req.Type {
		case "SMART_MERGE":
			count, err := d.Engine.SmartMerge(r.Context(), engine.MergeOptions{
				WindowOnly:   true,
				IgnorePinned: true,
			})
			if err != nil {
				d.Metrics.RecordOperation("smart_merge", "error")
				writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
				return
			}
			d.Metrics.RecordOperation("smart_merge", "ok")
			d.Metrics.AddGroups(count)
			writeJSON(w, http.StatusOK, map[string]any{"ok": true})

		case "SPLIT_BIG_GROUPS":
			count, err := d.Engine.SplitBigGroups(r.Context())
			if err != nil {
				d.Metrics.RecordOperation("split", "error")
				writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error()})
				return
			}
			d.Metrics.RecordOperation("split", "ok")
			writeJSON(w, http.StatusOK, map[string]any{"ok": true, "split": count})

		default:
			writeJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "Unknown message type"})
		}
	}
}
