package bridge

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nadalpiantini/tabgrouper/internal/logger"
)

func newBridgeServer(t *testing.T, healthy bool) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", func(w http.ResponseWriter, r *http.Request) {
		if !healthy {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/api/profiles", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"coding":{"windows":2},"writing":{"windows":1}}}`))
	})
	mux.HandleFunc("/api/profiles/coding/apply", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestConnect(t *testing.T) {
	srv := newBridgeServer(t, true)
	b := New(srv.URL+"/api", time.Second, logger.NewNop())

	if !b.Connect(context.Background()) {
		t.Error("expected Connect to succeed against a healthy service")
	}
}

func TestConnect_Unhealthy(t *testing.T) {
	srv := newBridgeServer(t, false)
	b := New(srv.URL+"/api", time.Second, logger.NewNop())

	if b.Connect(context.Background()) {
		t.Error("expected Connect to fail against an unhealthy service")
	}
}

func TestConnect_Unreachable(t *testing.T) {
	srv := newBridgeServer(t, true)
	srv.Close()
	b := New(srv.URL+"/api", 200*time.Millisecond, logger.NewNop())

	if b.Connect(context.Background()) {
		t.Error("expected Connect to fail when nothing listens")
	}
}

func TestProfiles(t *testing.T) {
	srv := newBridgeServer(t, true)
	b := New(srv.URL+"/api", time.Second, logger.NewNop())

	profiles := b.Profiles(context.Background())
	if len(profiles) != 2 {
		t.Fatalf("profiles = %d, want 2", len(profiles))
	}
	if _, ok := profiles["coding"]; !ok {
		t.Errorf("missing coding profile: %v", profiles)
	}
}

func TestProfiles_UnavailableYieldsEmpty(t *testing.T) {
	srv := newBridgeServer(t, false)
	b := New(srv.URL+"/api", time.Second, logger.NewNop())

	profiles := b.Profiles(context.Background())
	if profiles == nil {
		t.Fatal("expected an empty map, not nil")
	}
	if len(profiles) != 0 {
		t.Errorf("profiles = %v, want none from an unavailable bridge", profiles)
	}
}

func TestApply(t *testing.T) {
	srv := newBridgeServer(t, true)
	b := New(srv.URL+"/api", time.Second, logger.NewNop())
	ctx := context.Background()

	if !b.Apply(ctx, "coding") {
		t.Error("expected apply to succeed")
	}
	if b.Apply(ctx, "missing") {
		t.Error("expected apply to fail for an unknown profile")
	}
}

func TestApply_Unreachable(t *testing.T) {
	srv := newBridgeServer(t, true)
	srv.Close()
	b := New(srv.URL+"/api", 200*time.Millisecond, logger.NewNop())

	if b.Apply(context.Background(), "coding") {
		t.Error("expected apply to degrade to false")
	}
}
