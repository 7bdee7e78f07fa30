package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/mittwald/rootcheck/pkg/probe"
	log "github.com/sirupsen/logrus"
)

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *Server) handleStatus(w http.ResponseWriter, req *http.Request) {
	report, err := s.detector.Run()
	if err != nil {
		log.WithFields(log.Fields{"kind": "server"}).WithError(err).Error("detection failed")
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	status := http.StatusOK
	if report.Rooted {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, report)
}

func (s *Server) handleCheckPaths(w http.ResponseWriter, req *http.Request) {
	var paths []*string
	body := http.MaxBytesReader(w, req.Body, MaxPathsBodySize)
	if err := json.NewDecoder(body).Decode(&paths); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			http.Error(w, fmt.Sprintf("request body must not exceed %d bytes", MaxPathsBodySize), http.StatusRequestEntityTooLarge)
			return
		}
		http.Error(w, "request body must be a JSON array of paths", http.StatusBadRequest)
		return
	}

	results, err := s.detector.Probe().CheckForRootNative(paths)
	if err != nil {
		var violation *probe.ContractViolationError
		if errors.As(err, &violation) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, PathsResponse{Results: results})
}

func (s *Server) handleGetDebug(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, http.StatusOK, DebugState{Enabled: s.detector.Probe().LogDebugMessages()})
}

func (s *Server) handleSetDebug(w http.ResponseWriter, req *http.Request) {
	var state DebugState
	if err := json.NewDecoder(req.Body).Decode(&state); err != nil {
		http.Error(w, "request body must look like {\"enabled\": true}", http.StatusBadRequest)
		return
	}

	s.detector.Probe().SetLogDebugMessages(state.Enabled)
	log.WithField("enabled", state.Enabled).Info("debug messages toggled")

	writeJSON(w, http.StatusOK, state)
}

func parseInterval(raw string) (time.Duration, error) {
	if raw == "" {
		return DefaultWatchInterval, nil
	}

	interval, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if interval < MinWatchInterval {
		return 0, errors.New("interval must be at least " + MinWatchInterval.String())
	}
	return interval, nil
}

func (s *Server) handleWatch(w http.ResponseWriter, req *http.Request) {
	interval, err := parseInterval(req.FormValue("interval"))
	if err != nil {
		http.Error(w, "invalid interval: "+err.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, req, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	done := make(chan struct{})

	// handle client disconnects
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report, err := s.detector.Run()
		if err != nil {
			log.WithField("kind", "server").WithError(err).Error("detection failed during watch")
			_ = conn.WriteControl(
				websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseInternalServerErr, err.Error()),
				time.Now().Add(time.Second),
			)
			return
		}

		if err := conn.SetWriteDeadline(time.Now().Add(s.writeTimeout)); err != nil {
			return
		}
		if err := conn.WriteJSON(report); err != nil {
			log.WithField("kind", "server").WithError(err).Warn("watch client stopped receiving reports")
			return
		}

		select {
		case <-ticker.C:
		case <-done:
			return
		case <-req.Context().Done():
			return
		}
	}
}
