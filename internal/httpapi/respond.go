package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeAppError reports err through the error handler and answers with the
// sanitized user message.
func (s *Server) writeAppError(ctx context.Context, w http.ResponseWriter, status int, err error) {
	message := "Something went wrong. Please try again later"
	if s.opts.Errors != nil {
		message, _ = s.opts.Errors.Handle(ctx, err)
	} else {
		s.log.Error("request failed", "error", err)
	}

	writeError(w, status, message)
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
