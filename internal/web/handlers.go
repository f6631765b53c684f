package web

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"strings"

	"palmlens/internal/domain"
	"palmlens/internal/fault"
)

type analyzeRequest struct {
	Image              string              `json:"image"`
	MimeType           string              `json:"mimeType"`
	Action             string              `json:"action"`
	UserInfo           *domain.UserContext `json:"userInfo,omitempty"`
	HasNonDominantHand bool                `json:"hasNonDominantHand,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fault.Wrap(fault.Validation, "invalid request body", err))
		return
	}
	defer func() { _ = r.Body.Close() }()

	if req.Action != "" && req.Action != "analyze" {
		s.writeError(w, fault.New(fault.Validation, "unsupported action"))
		return
	}
	if strings.TrimSpace(req.Image) == "" {
		s.writeError(w, fault.New(fault.Validation, "image is required"))
		return
	}

	imageData, err := base64.StdEncoding.DecodeString(stripDataURL(req.Image))
	if err != nil {
		s.writeError(w, fault.Wrap(fault.Validation, "image is not valid base64", err))
		return
	}

	rec, err := s.service.Analyze(r.Context(), domain.AnalysisRequest{
		ImageData:         imageData,
		MimeType:          req.MimeType,
		UserContext:       req.UserInfo,
		HasSecondaryImage: req.HasNonDominantHand,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	// Flatten: the reading's own top-level groups plus the identity the
	// record gained on persistence.
	out := make(map[string]any, len(rec.Reading)+2)
	for k, v := range rec.Reading {
		out[k] = v
	}
	out["id"] = rec.ID
	out["createdAt"] = rec.CreatedAt
	s.writeJSON(w, http.StatusOK, out)
}

// stripDataURL drops a "data:image/...;base64," prefix if the client sent a
// data URL instead of bare base64.
func stripDataURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "data:") {
		if idx := strings.Index(s, ","); idx >= 0 {
			return s[idx+1:]
		}
	}
	return s
}

type chatRequest struct {
	Message string         `json:"message"`
	Context domain.Reading `json:"context,omitempty"`
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, fault.Wrap(fault.Validation, "invalid request body", err))
		return
	}
	defer func() { _ = r.Body.Close() }()

	reply, err := s.service.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}

func (s *Server) handleListReadings(w http.ResponseWriter, r *http.Request) {
	records, err := s.service.ListReadings(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"readings": records})
}

func (s *Server) handleGetReading(w http.ResponseWriter, r *http.Request) {
	rec, err := s.service.GetReading(r.Context(), r.PathValue("id"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteReading(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteReading(r.Context(), r.PathValue("id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
