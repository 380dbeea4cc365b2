package remnaclient

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"remna-tg-admin/internal/config"
)

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return logger
}

func newTestClient(baseURL string, mutate func(*config.APIConfig)) *Client {
	cfg := config.APIConfig{
		BaseURL:    baseURL,
		Token:      "test-token",
		Timeout:    5 * time.Second,
		VerifySSL:  true,
		RetryCount: 3,
	}
	if mutate != nil {
		mutate(&cfg)
	}

	client := New(cfg, testLogger())
	client.backoffUnit = time.Millisecond
	return client
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(body))
}

func TestUnwrapEnvelopeShapes(t *testing.T) {
	logger := testLogger()

	cases := []struct {
		name string
		in   string
		want string // "" means nil payload
	}{
		{"response key", `{"response": {"x": 1}}`, `{"x": 1}`},
		{"data key", `{"data": [1, 2]}`, `[1, 2]`},
		{"error payload", `{"success": false, "error": "boom"}`, ""},
		{"success false without error", `{"success": false}`, `{"success": false}`},
		{"plain object", `{"users": []}`, `{"users": []}`},
		{"bare list", `[1, 2, 3]`, `[1, 2, 3]`},
		{"bare string", `"hello"`, `"hello"`},
		{"null response", `{"response": null}`, ""},
		{"null", `null`, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Unwrap(json.RawMessage(tc.in), logger)
			if tc.want == "" {
				if got != nil {
					t.Fatalf("expected nil payload, got %s", got.Raw())
				}
				return
			}
			if got == nil {
				t.Fatal("expected payload, got nil")
			}
			if string(got.Raw()) != tc.want {
				t.Errorf("got %s, want %s", got.Raw(), tc.want)
			}
		})
	}
}

func TestUnwrapDoesNotRecurse(t *testing.T) {
	got := Unwrap(json.RawMessage(`{"response": {"data": {"x": 1}}}`), testLogger())
	if got == nil {
		t.Fatal("expected payload")
	}
	if string(got.Raw()) != `{"data": {"x": 1}}` {
		t.Errorf("inner envelope must pass through unchanged, got %s", got.Raw())
	}
}

func TestServerErrorRetriesUntilBudgetSpent(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	if payload := client.Get(context.Background(), "users", nil); payload != nil {
		t.Errorf("expected nil payload, got %s", payload.Raw())
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestServerErrorRecoversWithinBudget(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		writeJSON(w, `{"response": {"users": []}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	payload := client.Get(context.Background(), "users", nil)
	if payload == nil {
		t.Fatal("expected payload after recovery")
	}
	if attempts != 3 {
		t.Errorf("expected 3 attempts, got %d", attempts)
	}
}

func TestNotFoundShortCircuits(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	if payload := client.Get(context.Background(), "users/missing", nil); payload != nil {
		t.Error("expected nil payload for 404")
	}
	if attempts != 1 {
		t.Errorf("404 must not be retried, got %d attempts", attempts)
	}
}

func TestClientErrorShortCircuits(t *testing.T) {
	var attempts int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	if payload := client.Get(context.Background(), "users", nil); payload != nil {
		t.Error("expected nil payload for 403")
	}
	if attempts != 1 {
		t.Errorf("4xx must not be retried, got %d attempts", attempts)
	}
}

func TestNoContentYieldsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	if payload := client.Delete(context.Background(), "users/u1", nil); payload != nil {
		t.Error("expected nil payload for 204")
	}
}

func TestNonJSONContentTypeYieldsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>login</html>"))
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	if payload := client.Get(context.Background(), "users", nil); payload != nil {
		t.Error("expected nil payload for non-JSON response")
	}
}

func TestEmptyBodyYieldsNil(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	if payload := client.Get(context.Background(), "users", nil); payload != nil {
		t.Error("expected nil payload for empty body")
	}
}

func TestConnectionFailureExhaustsRetries(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // nothing listens anymore

	client := newTestClient(server.URL, nil)
	if payload := client.Get(context.Background(), "users", nil); payload != nil {
		t.Error("expected nil payload when connections fail")
	}
}

func TestBearerTokenHeader(t *testing.T) {
	var auth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get("Authorization")
		writeJSON(w, `{"response": {}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, nil)
	client.Get(context.Background(), "users", nil)
	if auth != "Bearer test-token" {
		t.Errorf("expected bearer header, got %q", auth)
	}
}

func TestCookieAuthentication(t *testing.T) {
	var cookie string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if c, err := r.Cookie("session"); err == nil {
			cookie = c.Value
		}
		writeJSON(w, `{"response": {}}`)
	}))
	defer server.Close()

	client := newTestClient(server.URL, func(cfg *config.APIConfig) {
		cfg.Token = ""
		cfg.Cookies = map[string]string{"session": "abc123"}
	})
	client.Get(context.Background(), "users", nil)
	if cookie != "abc123" {
		t.Errorf("expected session cookie, got %q", cookie)
	}
}

func TestPreflightFailureSkipsSingleAttemptCall(t *testing.T) {
	var mainCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})
	mux.HandleFunc("/nodes", func(w http.ResponseWriter, r *http.Request) {
		mainCalls++
		writeJSON(w, `{"response": {"nodes": []}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, func(cfg *config.APIConfig) {
		cfg.Preflight = true
		cfg.RetryCount = 1
	})
	if payload := client.execute(context.Background(), http.MethodGet, "nodes", nil, nil, 1); payload != nil {
		t.Error("expected nil payload when preflight fails with a single attempt")
	}
	if mainCalls != 0 {
		t.Errorf("main call must be skipped, got %d calls", mainCalls)
	}
}

func TestPreflightPassesThenMainCallProceeds(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/users", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"response": {"users": []}}`)
	})
	mux.HandleFunc("/nodes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, `{"response": {"nodes": [{"uuid": "n1"}]}}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	client := newTestClient(server.URL, func(cfg *config.APIConfig) {
		cfg.Preflight = true
	})
	nodes := client.GetNodes(context.Background())
	if len(nodes) != 1 || nodes[0].UUID != "n1" {
		t.Errorf("unexpected nodes: %v", nodes)
	}
}

func TestJoinURLTrimsSlashes(t *testing.T) {
	cases := []struct {
		base, endpoint, want string
	}{
		{"http://h/api", "users", "http://h/api/users"},
		{"http://h/api/", "/users", "http://h/api/users"},
		{"http://h/api", "/users/", "http://h/api/users/"},
	}
	for _, tc := range cases {
		if got := joinURL(tc.base, tc.endpoint); got != tc.want {
			t.Errorf("joinURL(%q, %q) = %q, want %q", tc.base, tc.endpoint, got, tc.want)
		}
	}
}
