package httputil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestWriteSuccess(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, "Login success", map[string]int{"userID": 7})

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var resp struct {
		StatusCode int            `json:"statusCode"`
		Message    string         `json:"message"`
		Data       map[string]int `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("statusCode = %d, want %d", resp.StatusCode, http.StatusOK)
	}
	if resp.Message != "Login success" {
		t.Errorf("message = %q", resp.Message)
	}
	if resp.Data["userID"] != 7 {
		t.Errorf("data = %v", resp.Data)
	}
}

// Success envelopes without data omit the field entirely.
func TestWriteSuccess_NilDataOmitted(t *testing.T) {
	rec := httptest.NewRecorder()

	WriteSuccess(rec, "Success", nil)

	body := rec.Body.String()
	if strings.Contains(body, `"data"`) {
		t.Errorf("body contains data field: %s", body)
	}
	if strings.Contains(body, `"meta"`) {
		t.Errorf("body contains meta field: %s", body)
	}
}

func TestWritePaged(t *testing.T) {
	rec := httptest.NewRecorder()

	WritePaged(rec, "Success", []int{1, 2, 3}, Meta{Total: 25, Page: 2, LastPage: 3})

	var resp struct {
		Data []int `json:"data"`
		Meta *Meta `json:"meta"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if resp.Meta == nil {
		t.Fatal("meta missing")
	}
	if resp.Meta.Total != 25 || resp.Meta.Page != 2 || resp.Meta.LastPage != 3 {
		t.Errorf("meta = %+v", resp.Meta)
	}
	if len(resp.Data) != 3 {
		t.Errorf("data = %v", resp.Data)
	}
}

// Error envelopes mirror the HTTP status inside the body.
func TestWriteError_StatusMirrored(t *testing.T) {
	tests := []struct {
		name  string
		write func(w http.ResponseWriter, message string)
		want  int
	}{
		{"bad request", WriteBadRequest, http.StatusBadRequest},
		{"unauthenticated", WriteUnauthenticated, http.StatusUnauthorized},
		{"forbidden", WriteForbidden, http.StatusForbidden},
		{"not found", WriteNotFound, http.StatusNotFound},
		{"conflict", WriteConflict, http.StatusConflict},
		{"internal", WriteInternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			tt.write(rec, "boom")

			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
			var resp Response
			if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
				t.Fatalf("decode body: %v", err)
			}
			if resp.StatusCode != tt.want {
				t.Errorf("envelope statusCode = %d, want %d", resp.StatusCode, tt.want)
			}
			if resp.Message != "boom" {
				t.Errorf("message = %q", resp.Message)
			}
		})
	}
}
