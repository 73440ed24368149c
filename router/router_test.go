// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/danielhkuo/coursevote/testutil"
)

func TestHealthEndpoint(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/health", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "OK" {
		t.Errorf("Expected body 'OK', got '%s'", w.Body.String())
	}
}

func TestRootEndpoint(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "coursevote API v1" {
		t.Errorf("Unexpected body: '%s'", w.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	req := httptest.NewRequest("GET", "/metrics", nil)
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}
}

// TestRoutesAreWired sends a request to every route and checks none
// 404s at the mux level (handlers may reject them for other reasons).
func TestRoutesAreWired(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	routes := []struct {
		method string
		path   string
	}{
		{"POST", "/register"},
		{"POST", "/login"},
		{"GET", "/me"},
		{"POST", "/proposals"},
		{"GET", "/proposals"},
		{"GET", "/proposals/1/score"},
		{"DELETE", "/proposals/1"},
		{"POST", "/proposals/1/vote"},
		{"GET", "/leaderboard"},
		{"GET", "/courses/bd/stats"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			req := httptest.NewRequest(route.method, route.path, nil)
			w := httptest.NewRecorder()

			mux.ServeHTTP(w, req)

			if w.Code == http.StatusMethodNotAllowed {
				t.Errorf("Route not wired for method: %s %s", route.method, route.path)
			}
			// ServeMux answers unregistered patterns with a plain
			// text 404; handler-level 404s carry a JSON body.
			if w.Code == http.StatusNotFound && w.Body.String() == "404 page not found\n" {
				t.Errorf("Route not registered: %s %s", route.method, route.path)
			}
		})
	}
}

// TestVoteThroughRouter exercises path-value extraction end to end.
func TestVoteThroughRouter(t *testing.T) {
	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()
	mux := NewRouter(st, cfg)

	_, token := testutil.RegisterTestUser(t, st, cfg, "bd", 10, "passw0rd")
	testutil.CreateTestProposal(t, st, "Free coffee")

	req := testutil.MakeRequest("POST", "/proposals/1/vote", nil, map[string]string{"X-Auth-Token": token})
	w := httptest.NewRecorder()

	mux.ServeHTTP(w, req)

	if w.Code != http.StatusCreated {
		t.Errorf("Expected 201, got %d. Body: %s", w.Code, w.Body.String())
	}
}
