package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"greeting-service/middleware/ratelimit/infra"
	"greeting-service/middleware/validate"

	"github.com/gorilla/mux"
)

const (
	greetingRoot    = "Hello, World!\n"
	greetingEvening = "Good evening"
)

// newRouter monta a tabela de rotas fixas. Matching é por caminho exato;
// minúsculas e barra final já foram normalizadas por normalizePath.
func (s *Server) newRouter() *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", textHandler(greetingRoot)).Methods(http.MethodGet)
	r.HandleFunc("/evening", textHandler(greetingEvening)).Methods(http.MethodGet)
	r.HandleFunc("/healthz", textHandler("ok\n")).Methods(http.MethodGet)
	r.Handle("/stats", validate.Middleware(
		validate.Field{Name: "keys", Rules: "omitempty,boolean"},
		validate.Field{Name: "route", Rules: "omitempty,max=200"},
	)(http.HandlerFunc(s.statsHandler))).Methods(http.MethodGet)

	r.NotFoundHandler = http.HandlerFunc(notFound)
	// método errado em rota conhecida responde como rota inexistente
	r.MethodNotAllowedHandler = http.HandlerFunc(notFound)
	return r
}

// textHandler responde um corpo fixo. Content-Length explícito: o tamanho em
// bytes do corpo é parte do contrato das rotas.
func textHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Length", strconv.Itoa(len(body)))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, body)
	}
}

func notFound(w http.ResponseWriter, r *http.Request) {
	body := fmt.Sprintf("no route for %s %s\n", r.Method, r.URL.Path)
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusNotFound)
	_, _ = io.WriteString(w, body)
}

// normalizePath deixa as rotas case-insensitive e tolerantes à barra final.
func normalizePath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p := strings.ToLower(r.URL.Path)
		if len(p) > 1 {
			if p = strings.TrimRight(p, "/"); p == "" {
				p = "/"
			}
		}
		r.URL.Path = p

		next.ServeHTTP(w, r)
	})
}

type countersJSON struct {
	Allowed int64 `json:"allowed"`
	Denied  int64 `json:"denied"`
}

// statsHandler expõe o snapshot em memória dos contadores do rate limit.
// Query: keys=true inclui contadores por cliente; route filtra uma rota.
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	includeKeys, _ := strconv.ParseBool(q.Get("keys")) // já validado
	routeFilter := q.Get("route")

	resp := struct {
		Total  countersJSON            `json:"total"`
		Routes map[string]countersJSON `json:"routes"`
		Keys   map[string]countersJSON `json:"keys,omitempty"`
	}{
		Total:  toJSON(s.stats.Total()),
		Routes: make(map[string]countersJSON),
	}

	for route, c := range s.stats.ByRoute() {
		if routeFilter != "" && route != routeFilter {
			continue
		}
		resp.Routes[route] = toJSON(c)
	}
	if includeKeys {
		resp.Keys = make(map[string]countersJSON)
		for k, c := range s.stats.ByKey() {
			resp.Keys[k] = toJSON(c)
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(resp)
}

func toJSON(c infra.Counters) countersJSON {
	return countersJSON{Allowed: c.Allowed, Denied: c.Denied}
}
