package web

import (
	"encoding/json"
	"net/http"

	"palmlens/internal/fault"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to encode response", "error", err)
	}
}

// writeError converts any pipeline error into the flat {error: string}
// contract with the status mapped from its kind. No partial results cross
// this boundary.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	kind := fault.KindOf(err)
	if kind == fault.Internal {
		s.logger.Error("request failed", "error", err)
	}
	s.writeJSON(w, httpStatus(kind), map[string]string{"error": fault.Message(err)})
}

func httpStatus(kind fault.Kind) int {
	switch kind {
	case fault.Validation:
		return http.StatusBadRequest
	case fault.NotFound:
		return http.StatusNotFound
	case fault.UpstreamEmpty, fault.Unparsable:
		return http.StatusBadGateway
	case fault.UpstreamTimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}
