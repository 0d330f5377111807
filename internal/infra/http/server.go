package http

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/cors"
)

type Server struct {
	srv *http.Server
}

// Options: обвязка вокруг маршрутов API.
type Options struct {
	Log         *slog.Logger
	Metrics     *Metrics // nil: без /metrics
	CORSOrigins []string
}

// NewMux создаёт мультиплексор со служебными маршрутами /health и /metrics.
// Маршруты API регистрируются в нём же, чтобы r.Pattern был заполнен.
func NewMux(m *Metrics) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	if m != nil {
		mux.Handle("GET /metrics", m.Handler())
	}
	return mux
}

// Wrap добавляет восстановление после паники, логирование запросов,
// метрики и CORS.
func Wrap(h http.Handler, o Options) http.Handler {
	h = recoverer(o.Log, h)
	h = instrument(o.Log, o.Metrics, h)

	origins := o.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders: []string{"Accept", "Content-Type", "Content-Length", "Accept-Encoding", "Authorization"},
	})
	return c.Handler(h)
}

func New(addr string, handler http.Handler) *Server {
	return &Server{srv: &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}}
}

// Start блокируется до Shutdown; штатная остановка не считается ошибкой.
func (s *Server) Start() error {
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
