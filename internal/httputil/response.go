package httputil

import (
	"encoding/json"
	"net/http"
)

// Meta carries pagination details for list responses.
type Meta struct {
	Total    int `json:"total"`
	Page     int `json:"page"`
	LastPage int `json:"last_page"`
}

// Response is the uniform envelope every endpoint answers with,
// success or failure: {statusCode, message, data?, meta?}.
type Response struct {
	StatusCode int         `json:"statusCode"`
	Message    string      `json:"message"`
	Data       interface{} `json:"data,omitempty"`
	Meta       *Meta       `json:"meta,omitempty"`
}

// WriteJSON writes an arbitrary payload with the given status code.
func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			// Headers already sent; nothing sensible left to do.
			return
		}
	}
}

// WriteSuccess writes a 200 envelope with optional data.
func WriteSuccess(w http.ResponseWriter, message string, data interface{}) {
	WriteJSON(w, http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
	})
}

// WritePaged writes a 200 envelope with data and pagination meta.
func WritePaged(w http.ResponseWriter, message string, data interface{}, meta Meta) {
	WriteJSON(w, http.StatusOK, Response{
		StatusCode: http.StatusOK,
		Message:    message,
		Data:       data,
		Meta:       &meta,
	})
}

// WriteError writes an error envelope whose statusCode mirrors the HTTP status.
func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, Response{
		StatusCode: status,
		Message:    message,
	})
}

func WriteBadRequest(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, message)
}

// WriteUnauthenticated signals a missing or garbled credential.
func WriteUnauthenticated(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, message)
}

// WriteForbidden signals a valid credential attempting a forbidden action.
func WriteForbidden(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusForbidden, message)
}

func WriteNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, message)
}

func WriteConflict(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusConflict, message)
}

func WriteInternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, message)
}
