// Package httpapi exposes the dataset read-only: latest snapshot,
// partition inventory and run metrics. No handler mutates anything.
package httpapi

import (
	"net/http"

	"jobintel-engine/internal/store"
)

type Deps struct {
	DB *store.DB
}

func NewMux(d Deps) *http.ServeMux {
	mux := http.NewServeMux()

	h := Handler{DB: d.DB}
	mux.HandleFunc("/health", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: h.Health,
	}))
	mux.HandleFunc("/latest", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: h.Latest,
	}))
	mux.HandleFunc("/partitions", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: h.Partitions,
	}))
	mux.HandleFunc("/rejects", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: h.Rejects,
	}))
	mux.HandleFunc("/metrics/summary", methodMux(map[string]http.HandlerFunc{
		http.MethodGet: h.Summary,
	}))

	return mux
}

func methodMux(m map[string]http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if h, ok := m[r.Method]; ok {
			h(w, r)
			return
		}
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}
