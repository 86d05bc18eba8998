package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestIsAuthenticated(t *testing.T) {
	c := New("http://example.invalid")
	if c.IsAuthenticated() {
		t.Error("fresh client should not be authenticated")
	}

	c.Token = "some-token"
	c.TokenExp = time.Now().Add(time.Hour)
	if !c.IsAuthenticated() {
		t.Error("client with an unexpired token should be authenticated")
	}

	c.TokenExp = time.Now().Add(-time.Minute)
	if c.IsAuthenticated() {
		t.Error("client with an expired token should not be authenticated")
	}
}

func TestDoRequestHeaders(t *testing.T) {
	var gotAuth, gotContentType string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := New(ts.URL)
	c.Token = "abc123"

	resp, err := c.doRequest(http.MethodPost, "/topics/", map[string]string{"title": "t"})
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "Bearer abc123" {
		t.Errorf("expected bearer header, got %q", gotAuth)
	}
	if gotContentType != "application/json" {
		t.Errorf("expected JSON content type, got %q", gotContentType)
	}

	c.Token = ""
	resp, err = c.doRequest(http.MethodGet, "/topics/", nil)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	resp.Body.Close()

	if gotAuth != "" {
		t.Errorf("anonymous request should have no Authorization header, got %q", gotAuth)
	}
}
