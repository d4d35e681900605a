package transport

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Versifine/mcwire/internal/registry"
)

type AdminOptions struct {
	Set      *registry.Set
	Gatherer prometheus.Gatherer

	// WebSocketPath, when set, mounts the game protocol on Server at that
	// path.
	WebSocketPath string
	Server        *Server
}

// NewAdminRouter serves operational endpoints:
//
//	GET /healthz
//	GET /metrics
//	GET /registries             registry names, sizes and the snapshot fingerprint
//	GET /registries/{name}      "id name" lines in id order
func NewAdminRouter(ctx context.Context, opts AdminOptions) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	gatherer := opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/registries", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			fmt.Fprintf(w, "version %d\nfingerprint %016x\n", opts.Set.Version, opts.Set.Fingerprint())
			for _, name := range opts.Set.Names() {
				keys, _ := opts.Set.Keys(name)
				fmt.Fprintf(w, "%s %d\n", name, len(keys))
			}
		})
		r.Get("/{name}", func(w http.ResponseWriter, r *http.Request) {
			keys, ok := opts.Set.Keys(chi.URLParam(r, "name"))
			if !ok {
				http.Error(w, "unknown registry", http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			for id, key := range keys {
				w.Write([]byte(strconv.Itoa(id) + " " + key + "\n"))
			}
		})
	})

	if opts.WebSocketPath != "" && opts.Server != nil {
		r.Get(opts.WebSocketPath, opts.Server.WebSocketHandler(ctx))
	}
	return r
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// WebSocketHandler upgrades the request and serves it like a TCP connection
// until ctx is cancelled or the peer goes away.
func (s *Server) WebSocketHandler(ctx context.Context) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			s.log.Warn("WebSocket upgrade failed", "remote", r.RemoteAddr, "error", err)
			return
		}
		s.wg.Add(1)
		defer s.wg.Done()
		s.ServeStream(ctx, NewWebSocketStream(conn, s.opts.MaxPacketSize))
	}
}
