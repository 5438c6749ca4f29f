package handler

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorResponse is the JSON body for every non-2xx API response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail carries a stable machine-readable code plus a human message.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeNotFound responds 404. The caller supplies the message (e.g. "plan
// not found") because the handler is the layer that knows what was looked up.
func writeNotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, ErrorResponse{Error: ErrorDetail{Code: "not_found", Message: message}})
}

// writeValidation responds 422 with the message extracted from a wrapped
// domain.ErrValidation error.
func writeValidation(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity,
		ErrorResponse{Error: ErrorDetail{Code: "validation_error", Message: unwrapMessage(err)}})
}

// writeBadRequest responds 400 for requests rejected before reaching the
// service layer (missing body, malformed JSON, non-UUID path param).
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: ErrorDetail{Code: "bad_request", Message: message}})
}

// writeBlocked responds 422 for a completion the provider refused to
// generate. Retrying the identical prompt will produce the same refusal, so
// this is reported as a request problem, not a server one.
func writeBlocked(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusUnprocessableEntity,
		ErrorResponse{Error: ErrorDetail{Code: "generation_blocked", Message: unwrapMessage(err)}})
}

// writeUpstreamFailed responds 502 for a transport or parse failure talking
// to the completion provider.
func writeUpstreamFailed(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadGateway,
		ErrorResponse{Error: ErrorDetail{Code: "generation_failed", Message: unwrapMessage(err)}})
}

// writeInternal responds 500 with a generic body; the real error goes to the
// log, never to the client.
func writeInternal(w http.ResponseWriter) {
	writeJSON(w, http.StatusInternalServerError,
		ErrorResponse{Error: ErrorDetail{Code: "internal_error", Message: "internal server error"}})
}

// unwrapMessage extracts the human-readable middle from a wrapped sentinel
// error. Service errors read "service.X.Y: <detail>: <sentinel>", e.g.
// "service.PlannerService.Plan: destination is required: validation error"
// becomes "destination is required".
func unwrapMessage(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, suffix := range []string{": validation error", ": generation blocked", ": generation failed"} {
		msg = strings.TrimSuffix(msg, suffix)
	}
	if cut := strings.Index(msg, ": "); cut >= 0 && strings.HasPrefix(msg, "service.") {
		msg = msg[cut+2:]
	}
	return msg
}
