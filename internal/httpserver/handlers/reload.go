package handlers

import (
	"net/http"

	"github.com/nadalpiantini/tabgrouper/internal/httpserver/deps"
	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

// Reload triggers a manual preset reload and an immediate autosave
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		presetsTriggered := false
		if d.ReloadTrigger != nil {
			select {
			case d.ReloadTrigger <- struct{}{}:
				presetsTriggered = true
				d.Logger.Info("manual preset reload triggered via endpoint",
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("preset reload already in progress",
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		autosaveTriggered := false
		if d.AutosaveNow != nil {
			select {
			case d.AutosaveNow <- struct{}{}:
				autosaveTriggered = true
				d.Logger.Info("manual autosave triggered via endpoint",
					logger.String("remote_ip", r.RemoteAddr))
			default:
				d.Logger.Warn("autosave already in progress",
					logger.String("remote_ip", r.RemoteAddr))
			}
		}

		if presetsTriggered || autosaveTriggered {
			w.WriteHeader(http.StatusAccepted)
			if _, err := w.Write([]byte("reload triggered\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		} else {
			w.WriteHeader(http.StatusTooManyRequests)
			if _, err := w.Write([]byte("reload already in progress, please wait\n")); err != nil {
				d.Logger.Debug("failed to write response", logger.Error(err))
			}
		}
	}
}
