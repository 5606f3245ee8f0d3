package server

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/matzehuels/archview/pkg/diagram"
	"github.com/matzehuels/archview/pkg/errors"
	"github.com/matzehuels/archview/pkg/theme"
)

const svgContentType = "image/svg+xml"

func (s *Server) handleArtifact(w http.ResponseWriter, r *http.Request) {
	svg := s.live.Artifact()
	if svg == nil {
		http.Error(w, "diagram not generated yet", http.StatusServiceUnavailable)
		return
	}
	writeSVG(w, svg)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"subscribers": s.live.Hub().Len(),
	})
}

// handleEvents streams "reload" notifications. The subscription is dropped
// when the client goes away or a write fails.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request) {
	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)

	if _, err := fmt.Fprint(w, "retry: 1000\n\n"); err != nil {
		return
	}
	if err := rc.Flush(); err != nil {
		s.logger.Warn("event stream cannot flush", "error", err)
		return
	}

	sub := s.live.Subscribe()
	defer sub.Close()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-sub.C:
			if _, err := fmt.Fprintf(w, "data: %s\n\n", msg); err != nil {
				return
			}
			if err := rc.Flush(); err != nil {
				return
			}
		}
	}
}

// generateRequest is the body of POST /api/generate-diagram. Pointers tell
// a missing list from an empty one.
type generateRequest struct {
	Elements  *[]diagram.Element  `json:"elements"`
	Relations *[]diagram.Relation `json:"relations"`
	Theme     string              `json:"theme,omitempty"`
	Layout    string              `json:"layout,omitempty"`
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeError(w, errors.New(errors.ErrCodeMalformedRequest, "request body exceeds %d bytes", MaxBodyBytes))
			return
		}
		writeError(w, errors.Wrap(errors.ErrCodeMalformedRequest, err, "invalid JSON body"))
		return
	}
	if req.Elements == nil || req.Relations == nil {
		writeError(w, errors.New(errors.ErrCodeMalformedRequest, "invalid payload: elements and relations are required"))
		return
	}

	doc := &diagram.Document{Elements: *req.Elements, Relations: *req.Relations}
	opts := s.opts
	opts.LiveReload = false
	if theme.IsKnown(req.Theme) {
		opts.Palette = req.Theme
	}
	if strings.TrimSpace(req.Layout) != "" {
		opts.RankDir = req.Layout
	}

	res, err := s.runner.Generate(r.Context(), doc, opts)
	if err != nil {
		s.logger.Warn("generate-diagram failed", "error", err)
		writeError(w, err)
		return
	}
	writeSVG(w, res.SVG)
}

func (s *Server) handleCurrentDiagram(w http.ResponseWriter, r *http.Request) {
	requested := strings.ToLower(r.URL.Query().Get("theme"))
	doc := s.live.Document()
	if doc == nil || !theme.IsKnown(requested) {
		s.handleArtifact(w, r)
		return
	}

	opts := s.opts
	opts.Palette = requested
	res, err := s.runner.Generate(r.Context(), doc, opts)
	if err != nil {
		s.logger.Error("current-diagram failed", "theme", requested, "error", err)
		writeError(w, err)
		return
	}
	writeSVG(w, res.SVG)
}

func (s *Server) handleCurrentData(w http.ResponseWriter, r *http.Request) {
	doc := s.live.Document()
	if doc == nil {
		doc = diagram.Empty()
	}
	writeJSON(w, http.StatusOK, doc)
}

func writeSVG(w http.ResponseWriter, svg []byte) {
	w.Header().Set("Content-Type", svgContentType)
	w.Header().Set("Cache-Control", "no-cache")
	_, _ = w.Write(svg)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError reports client errors as {"error"} and server errors as
// {"error", "message"}.
func writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if errors.IsClientError(err) {
		writeJSON(w, status, map[string]string{
			"error": errors.UserMessage(err),
			"code":  string(errors.GetCode(err)),
		})
		return
	}
	writeJSON(w, status, map[string]string{
		"error":   "diagram generation failed",
		"message": errors.UserMessage(err),
	})
}
