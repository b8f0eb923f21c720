package connection

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func writeEnvelope(w http.ResponseWriter, status int, code, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]any{
		"code":       code,
		"message":    message,
		"request_id": "req-test",
		"timestamp":  time.Now().UnixMilli(),
		"data":       data,
	})
}

func TestNewHTTPClient_BaseURL(t *testing.T) {
	tests := []struct {
		server string
		want   string
	}{
		{"localhost:5080", "http://localhost:5080"},
		{"http://localhost:5080/", "http://localhost:5080"},
		{"https://gate.example.com", "https://gate.example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.server, func(t *testing.T) {
			if got := NewHTTPClient(tt.server, 0).BaseURL(); got != tt.want {
				t.Errorf("BaseURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestHTTPClient_Post(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/v1/tokens" {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		var req struct {
			Identifier string `json:"identifier"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		writeEnvelope(w, http.StatusCreated, "OK", "success", map[string]string{"token": "tok-for-" + req.Identifier})
	}))
	defer srv.Close()

	var out struct {
		Token string `json:"token"`
	}
	err := NewHTTPClient(srv.URL, time.Second).Post(context.Background(), "/v1/tokens",
		map[string]string{"identifier": "alice@example.com"}, &out)
	if err != nil {
		t.Fatalf("Post() error = %v", err)
	}
	if out.Token != "tok-for-alice@example.com" {
		t.Errorf("token = %q", out.Token)
	}
}

func TestHTTPClient_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusBadGateway, "TG-NTFY-5020", "token delivery failed", map[string]any{"email": "a@example.com"})
	}))
	defer srv.Close()

	var out struct {
		Email string `json:"email"`
	}
	err := NewHTTPClient(srv.URL, time.Second).Post(context.Background(), "/v1/auth/register", nil, &out)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Status != http.StatusBadGateway || apiErr.Code != "TG-NTFY-5020" || apiErr.RequestID != "req-test" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.Error() != "[TG-NTFY-5020] token delivery failed" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
	if out.Email != "a@example.com" {
		t.Errorf("error payload not decoded: %+v", out)
	}
}

func TestHTTPClient_NonJSONError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewHTTPClient(srv.URL, time.Second).Get(context.Background(), "/health", nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Error() != "request failed with status 502" {
		t.Errorf("Error() = %q", apiErr.Error())
	}
}

func TestHTTPClient_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	if err := NewHTTPClient(url, time.Second).Get(context.Background(), "/health", nil); err == nil {
		t.Error("Get() against a closed server should fail")
	}
}
