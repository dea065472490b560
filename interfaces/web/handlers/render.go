// Package handlers contains the chi HTTP handlers for the label API.
package handlers

import (
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"strings"

	"labelguard/domain/contracts"
	"labelguard/infrastructure/repositories"
)

// respond writes the payload as JSON, or XML when the Accept header asks
// for it.
func respond(w http.ResponseWriter, r *http.Request, status int, payload any) {
	if wantsXML(r) {
		w.Header().Set("Content-Type", "application/xml; charset=utf-8")
		w.WriteHeader(status)
		if err := xml.NewEncoder(w).Encode(payload); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func wantsXML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "application/xml") || strings.Contains(accept, "text/xml")
}

// errorBody is the wire shape of an error response. The kind field carries
// the domain error discriminant so clients can react per kind.
type errorBody struct {
	Error string `json:"error" xml:"error"`
	Kind  string `json:"kind,omitempty" xml:"kind,omitempty"`
}

// respondError maps domain error kinds to HTTP statuses and keeps the kind
// visible in the body rather than collapsing everything to generic strings.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	kind := contracts.KindOf(err)

	switch kind {
	case contracts.KindInvalidLabel:
		status = http.StatusUnprocessableEntity
	case contracts.KindLabelNotFound, contracts.KindGroundingNotFound:
		status = http.StatusNotFound
	case contracts.KindEncryptionFailure:
		status = http.StatusConflict
	case contracts.KindClassificationFailure:
		status = http.StatusInternalServerError
	}

	var dup repositories.ErrDuplicateLabel
	if errors.As(err, &dup) {
		status = http.StatusConflict
	}

	respond(w, r, status, errorBody{Error: err.Error(), Kind: string(kind)})
}

// decodeJSON parses the request body into dst.
func decodeJSON(r *http.Request, dst any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst)
}
