package repository

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"imovel-searcher/internal/config"
)

func newTestRepository(t *testing.T, handler http.HandlerFunc) *ListingRepository {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewListingRepository(config.ListingsConfig{
		BaseURL:     server.URL + "/wp-json/imob/v1/imoveis",
		BearerToken: "token-123",
		Cookie:      "PHPSESSID=abc",
		Timeout:     2 * time.Second,
		Breaker: config.CircuitBreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          time.Minute,
			FailureThreshold: 2,
		},
	}, zap.NewNop())
}

func TestFetchPage_RequestShape(t *testing.T) {
	var gotPath, gotPage, gotPerPage, gotAuth, gotCookie string
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotPage = r.URL.Query().Get("page")
		gotPerPage = r.URL.Query().Get("per_page")
		gotAuth = r.Header.Get("Authorization")
		gotCookie = r.Header.Get("Cookie")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"titulo": "Apartamento"}]`))
	})

	payload, err := repo.FetchPage(context.Background(), 2, 20)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}

	if gotPath != "/wp-json/imob/v1/imoveis" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotPage != "2" || gotPerPage != "20" {
		t.Errorf("expected page=2&per_page=20, got page=%s per_page=%s", gotPage, gotPerPage)
	}
	if gotAuth != "Bearer token-123" {
		t.Errorf("unexpected Authorization header %q", gotAuth)
	}
	if gotCookie != "PHPSESSID=abc" {
		t.Errorf("unexpected Cookie header %q", gotCookie)
	}

	items, ok := payload.([]any)
	if !ok || len(items) != 1 {
		t.Fatalf("expected a one-element array, got %#v", payload)
	}
}

func TestFetchPage_WrappedPayload(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data": [{"id": 1}, {"id": 2}], "total": 2}`))
	})

	payload, err := repo.FetchPage(context.Background(), 1, 20)
	if err != nil {
		t.Fatalf("FetchPage() error = %v", err)
	}
	obj, ok := payload.(map[string]any)
	if !ok {
		t.Fatalf("expected an object, got %#v", payload)
	}
	if _, ok := obj["data"].([]any); !ok {
		t.Errorf("expected data array, got %#v", obj["data"])
	}
}

func TestFetchPage_UpstreamError(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"code":"rest_forbidden"}`))
	})

	_, err := repo.FetchPage(context.Background(), 1, 20)
	if err == nil {
		t.Fatal("expected error for 401")
	}

	var upstreamErr *UpstreamError
	if !errors.As(err, &upstreamErr) {
		t.Fatalf("expected *UpstreamError, got %T", err)
	}
	if upstreamErr.StatusCode != http.StatusUnauthorized {
		t.Errorf("expected status 401, got %d", upstreamErr.StatusCode)
	}
	want := `API imóveis: 401 - {"code":"rest_forbidden"}`
	if err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestFetchPage_InvalidJSON(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>maintenance</html>`))
	})

	if _, err := repo.FetchPage(context.Background(), 1, 20); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestFetchRaw_ReturnsBodyUnchanged(t *testing.T) {
	body := `{"imoveis":[{"id":7}],"pagina":1}`
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(body))
	})

	raw, err := repo.FetchRaw(context.Background(), 1, 5)
	if err != nil {
		t.Fatalf("FetchRaw() error = %v", err)
	}
	if string(raw) != body {
		t.Errorf("FetchRaw() = %s, want %s", raw, body)
	}
}

func TestFetchPage_BreakerOpensAfterFailures(t *testing.T) {
	calls := 0
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadGateway)
	})

	for i := 0; i < 2; i++ {
		repo.FetchPage(context.Background(), 1, 20)
	}

	_, err := repo.FetchPage(context.Background(), 1, 20)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Fatalf("expected ErrOpenState, got %v", err)
	}
	if calls != 2 {
		t.Errorf("expected 2 upstream calls before the breaker opened, got %d", calls)
	}
}

func TestFetchPage_CancelledContext(t *testing.T) {
	repo := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.FetchPage(ctx, 1, 20); err == nil {
		t.Fatal("expected error for cancelled context")
	}
}
