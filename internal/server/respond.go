package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"soylana/internal/crosscheck"
	"soylana/internal/holderscan"
	"soylana/internal/solscan"
)

// errorBody is the JSON shape of every error response.
type errorBody struct {
	Detail         string `json:"detail"`
	UpstreamStatus int    `json:"upstream_status,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps an error to an HTTP response: validation failures are
// client errors, provider failures surface the upstream status code, and
// everything else is a 500.
func writeError(w http.ResponseWriter, err error) {
	var validation *crosscheck.ValidationError
	if errors.As(err, &validation) {
		writeJSON(w, http.StatusBadRequest, errorBody{Detail: validation.Message})
		return
	}

	var hsErr *holderscan.Error
	if errors.As(err, &hsErr) {
		writeJSON(w, upstreamStatus(hsErr.StatusCode), errorBody{Detail: err.Error(), UpstreamStatus: hsErr.StatusCode})
		return
	}

	var ssErr *solscan.Error
	if errors.As(err, &ssErr) {
		writeJSON(w, upstreamStatus(ssErr.StatusCode), errorBody{Detail: err.Error(), UpstreamStatus: ssErr.StatusCode})
		return
	}

	writeJSON(w, http.StatusInternalServerError, errorBody{Detail: err.Error()})
}

// upstreamStatus mirrors the provider's error status when it is an error
// status, otherwise reports a bad gateway.
func upstreamStatus(code int) int {
	if code >= 400 {
		return code
	}
	return http.StatusBadGateway
}
