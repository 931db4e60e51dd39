package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestTavily(t *testing.T, handler http.HandlerFunc) *Tavily {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	tav := NewTavilyWithClient("test-key", &http.Client{Timeout: 2 * time.Second})
	tav.Endpoint = srv.URL
	return tav
}

func TestSearch_RequestShape(t *testing.T) {
	var body map[string]any
	tav := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request body: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[]}`))
	})

	if _, err := tav.Search(context.Background(), "weather in Paris"); err != nil {
		t.Fatalf("Search() error: %v", err)
	}

	if body["query"] != "weather in Paris" {
		t.Fatalf("query = %v, want %q", body["query"], "weather in Paris")
	}
	if body["api_key"] != "test-key" {
		t.Fatalf("api_key = %v, want test-key", body["api_key"])
	}
	if body["max_results"] != float64(5) {
		t.Fatalf("max_results = %v, want 5", body["max_results"])
	}
	if body["include_answer"] != false {
		t.Fatalf("include_answer = %v, want false", body["include_answer"])
	}
	if body["include_raw_content"] != false {
		t.Fatalf("include_raw_content = %v, want false", body["include_raw_content"])
	}
}

func TestSearch_DecodesResults(t *testing.T) {
	tav := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"title":"One","url":"https://a.test","content":"first"},
			{"url":"https://b.test","content":"second"}
		]}`))
	})

	results, err := tav.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("Search() len = %d, want 2", len(results))
	}
	if results[0].Title != "One" || results[0].URL != "https://a.test" || results[0].Content != "first" {
		t.Fatalf("results[0] = %+v", results[0])
	}
	if results[1].Title != "" {
		t.Fatalf("results[1].Title = %q, want empty", results[1].Title)
	}
}

func TestSearch_CapsAtFiveResults(t *testing.T) {
	tav := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[
			{"url":"https://1.test"},{"url":"https://2.test"},{"url":"https://3.test"},
			{"url":"https://4.test"},{"url":"https://5.test"},{"url":"https://6.test"},
			{"url":"https://7.test"}
		]}`))
	})

	results, err := tav.Search(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if len(results) != 5 {
		t.Fatalf("Search() len = %d, want 5", len(results))
	}
}

func TestSearch_NonOKStatus(t *testing.T) {
	tav := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
	})

	if _, err := tav.Search(context.Background(), "anything"); err == nil {
		t.Fatalf("Search() expected error on 401")
	}
}

func TestSearch_RetriesOnTooManyRequests(t *testing.T) {
	attempts := 0
	tav := newTestTavily(t, func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"results":[{"url":"https://a.test"}]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	results, err := tav.Search(ctx, "anything")
	if err != nil {
		t.Fatalf("Search() error: %v", err)
	}
	if attempts != 2 {
		t.Fatalf("attempts = %d, want 2", attempts)
	}
	if len(results) != 1 {
		t.Fatalf("Search() len = %d, want 1", len(results))
	}
}
