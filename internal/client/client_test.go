package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/PerfectTense/pt-client-go/internal/config"
	"github.com/PerfectTense/pt-client-go/internal/engine"
	"github.com/PerfectTense/pt-client-go/internal/engine/transform"
)

func testConfig(baseURL string) *config.Config {
	cfg := config.Default()
	cfg.API.Key = "key-123"
	cfg.API.AppKey = "app-456"
	cfg.API.BaseURL = baseURL
	return cfg
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	c, err := New(testConfig(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return c, srv
}

func TestNewRequiresConfig(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNilConfig) {
		t.Errorf("nil config: got %v", err)
	}
	cfg := config.Default()
	if _, err := New(cfg); !errors.Is(err, ErrMissingAPIKey) {
		t.Errorf("missing key: got %v", err)
	}
}

func TestSubmit(t *testing.T) {
	var gotAuth, gotAppAuth string
	var gotBody map[string]any

	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != correctPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		gotAppAuth = r.Header.Get("AppAuthorization")
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "job-9",
			"grammarScore": 95,
			"rulesApplied": [{
				"originalSentence": [{"id": 1, "value": "Teh", "after": ""}],
				"transformations": [{
					"tokensAffected": [{"id": 1, "value": "Teh", "after": ""}],
					"tokensAdded": [{"id": 2, "value": "The", "after": ""}]
				}]
			}]
		}`))
	})

	doc, err := c.Submit(context.Background(), "Teh", SubmitOptions{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "key-123" || gotAppAuth != "app-456" {
		t.Errorf("auth headers = %q / %q", gotAuth, gotAppAuth)
	}
	if gotBody["text"] != "Teh" {
		t.Errorf("submitted text = %v", gotBody["text"])
	}
	if doc.ID != "job-9" {
		t.Errorf("job id = %q", doc.ID)
	}
	if len(doc.Sentences) != 1 || len(doc.Sentences[0].Transformations) != 1 {
		t.Fatalf("unexpected result shape: %+v", doc)
	}
}

func TestSubmitMalformedResult(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"id": "job-9"}`))
	})
	if _, err := c.Submit(context.Background(), "x", SubmitOptions{}); !errors.Is(err, transform.ErrMissingRules) {
		t.Errorf("expected ErrMissingRules, got %v", err)
	}
}

func TestSubmitUnauthorized(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	if _, err := c.Submit(context.Background(), "x", SubmitOptions{}); !errors.Is(err, ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized, got %v", err)
	}
}

func TestSubmitServiceError(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"message": "text too long"}`))
	})
	_, err := c.Submit(context.Background(), "x", SubmitOptions{})
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.Status != http.StatusBadRequest || apiErr.Message != "text too long" {
		t.Errorf("unexpected APIError: %+v", apiErr)
	}
}

func TestPersistStatus(t *testing.T) {
	var gotBody map[string]any
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != intStatusPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		data, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(data, &gotBody)
		_, _ = w.Write([]byte(`{}`))
	})

	err := c.PersistStatus(context.Background(), engine.StatusUpdate{
		JobID:           "job-9",
		SentenceIndex:   2,
		IndexInSentence: 1,
		SentenceText:    "The end",
		Offset:          4,
		Status:          transform.StatusAccepted,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotBody["id"] != "job-9" || gotBody["status"] != "accepted" {
		t.Errorf("body = %v", gotBody)
	}
	if gotBody["sentenceIndex"] != float64(2) || gotBody["indexInSentence"] != float64(1) {
		t.Errorf("addressing = %v / %v", gotBody["sentenceIndex"], gotBody["indexInSentence"])
	}
	if gotBody["offset"] != float64(4) || gotBody["sentence"] != "The end" {
		t.Errorf("body = %v", gotBody)
	}
}

func TestUsage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != usagePath {
			t.Errorf("path = %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"apiCallsUsed": 120, "apiCallsRemaining": 880, "unlimited": false}`))
	})

	u, err := c.Usage(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.APICallsUsed != 120 || u.APICallsRemaining != 880 || u.Unlimited {
		t.Errorf("usage = %+v", u)
	}
}

func TestValidateKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	ok, err := c.ValidateKey(context.Background())
	if err != nil || !ok {
		t.Errorf("expected valid key, got ok=%v err=%v", ok, err)
	}
}

func TestValidateKeyRejected(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	ok, err := c.ValidateKey(context.Background())
	if err != nil {
		t.Fatalf("rejected key is not a transport error: %v", err)
	}
	if ok {
		t.Error("expected rejected key")
	}
}

func TestRegisterApp(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != appKeyPath {
			t.Errorf("path = %q", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"key": "app-key-777"}`))
	})

	key, err := c.RegisterApp(context.Background(), AppRegistration{Name: "ptedit", Email: "dev@example.com"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if key != "app-key-777" {
		t.Errorf("key = %q", key)
	}
}

func TestRegisterAppNoKey(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})
	if _, err := c.RegisterApp(context.Background(), AppRegistration{Name: "x", Email: "y"}); !errors.Is(err, ErrNoAppKey) {
		t.Errorf("expected ErrNoAppKey, got %v", err)
	}
}
