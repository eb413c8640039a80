package handler

import (
	"net/http/httptest"
	"testing"

	"wavegram/internal/model"
)

func TestParseListQuery(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		want    model.ListQuery
		wantErr bool
	}{
		{
			name: "defaults",
			url:  "/api/v1/posts/mine",
			want: model.ListQuery{Page: 1, Limit: 10},
		},
		{
			name: "explicit page and limit",
			url:  "/api/v1/posts/mine?page=3&limit=5",
			want: model.ListQuery{Page: 3, Limit: 5},
		},
		{
			name: "search passthrough",
			url:  "/api/v1/posts/mine?search=sunset",
			want: model.ListQuery{Search: "sunset", Page: 1, Limit: 10},
		},
		{
			name:    "page zero",
			url:     "/api/v1/posts/mine?page=0",
			wantErr: true,
		},
		{
			name:    "negative limit",
			url:     "/api/v1/posts/mine?limit=-1",
			wantErr: true,
		},
		{
			name:    "non-numeric page",
			url:     "/api/v1/posts/mine?page=abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.url, nil)

			q, err := parseListQuery(req)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("parseListQuery: %v", err)
			}
			if q != tt.want {
				t.Errorf("query = %+v, want %+v", q, tt.want)
			}
		})
	}
}
