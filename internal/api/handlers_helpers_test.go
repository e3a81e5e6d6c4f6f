// BookVibe - Book Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/bookvibe

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeLogValue(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"newline", "line1\nline2", `line1\x0aline2`},
		{"carriage return", "a\rb", `a\x0db`},
		{"delete", "a\x7fb", `a\x7fb`},
		{"unicode kept", "Brontë", "Brontë"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := sanitizeLogValue(tt.input); got != tt.want {
				t.Errorf("sanitizeLogValue(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseIntParam(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{"42", 42, false},
		{" 7 ", 7, false},
		{"-3", -3, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1.5", 0, true},
	}

	for _, tt := range tests {
		got, err := parseIntParam(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseIntParam(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("parseIntParam(%q) = %d, want %d", tt.input, got, tt.want)
		}
	}
}

func TestParseOptionalIntParam(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?user_id=5&blank=&bad=x", nil)

	got, err := parseOptionalIntParam(req, "user_id")
	if err != nil || got == nil || *got != 5 {
		t.Errorf("user_id = %v, %v, want 5", got, err)
	}
	if got, err := parseOptionalIntParam(req, "blank"); err != nil || got != nil {
		t.Errorf("blank = %v, %v, want nil, nil", got, err)
	}
	if got, err := parseOptionalIntParam(req, "missing"); err != nil || got != nil {
		t.Errorf("missing = %v, %v, want nil, nil", got, err)
	}
	if _, err := parseOptionalIntParam(req, "bad"); err == nil {
		t.Error("bad: expected error")
	}
}

func TestGenerateETag_Stable(t *testing.T) {
	payload := map[string]int{"a": 1}
	first := generateETag(payload)
	if first == "" || first[0] != '"' || first[len(first)-1] != '"' {
		t.Fatalf("generateETag() = %q, want quoted value", first)
	}
	if second := generateETag(payload); second != first {
		t.Errorf("generateETag() = %q on second call, want %q", second, first)
	}
	if other := generateETag(map[string]int{"a": 2}); other == first {
		t.Error("different payloads should produce different ETags")
	}
}

func TestRespondJSON_ConditionalGet(t *testing.T) {
	router := newTestRouter(newFakeRecommender(), nil)

	first := serve(t, router, http.MethodGet, "/api/v1/books")
	etag := first.Header().Get("ETag")
	if etag == "" {
		t.Fatal("ETag header missing")
	}
	if got := first.Header().Get("Cache-Control"); got != "no-cache" {
		t.Errorf("Cache-Control = %q, want no-cache", got)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	req.Header.Set("If-None-Match", etag)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotModified {
		t.Fatalf("status = %d, want 304", rec.Code)
	}
	if rec.Body.Len() != 0 {
		t.Errorf("body length = %d, want 0", rec.Body.Len())
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/books", nil)
	req.Header.Set("If-None-Match", `"stale"`)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("status with stale ETag = %d, want 200", rec.Code)
	}
}

func TestRespondJSON_NoETagOnErrors(t *testing.T) {
	router := newTestRouter(newFakeRecommender(), nil)

	rec := serve(t, router, http.MethodGet, "/api/v1/recommendations/content/abc")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if etag := rec.Header().Get("ETag"); etag != "" {
		t.Errorf("ETag = %q, want none on error responses", etag)
	}
}
