package httpops

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/jose-valero/bullet-bot/internal/app/session"
	"github.com/jose-valero/bullet-bot/internal/infra/storage"
)

// Rooms es la vista de sólo lectura del registro de salas.
type Rooms interface {
	Get(roomID string) session.RoomSession
	Running() []string
}

// RunLister es opcional: sin DB no se expone /runs.
type RunLister interface {
	ListRecent(ctx context.Context, guildID string, limit int) ([]storage.TournamentRun, error)
}

type Server struct {
	rooms Rooms
	runs  RunLister
	mux   chi.Router
}

func New(rooms Rooms, runs RunLister) *Server {
	s := &Server{rooms: rooms, runs: runs, mux: chi.NewRouter()}
	s.routes()
	return s
}

func (s *Server) Handler() http.Handler { return s.mux }

func (s *Server) routes() {
	s.mux.Use(chimiddleware.Recoverer)
	s.mux.Use(requestLog)

	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	s.mux.Get("/rooms", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string][]string{"running": s.rooms.Running()})
	})

	s.mux.Get("/rooms/{roomID}", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.rooms.Get(chi.URLParam(r, "roomID")))
	})

	s.mux.Get("/rooms/{roomID}/runs", func(w http.ResponseWriter, r *http.Request) {
		if s.runs == nil {
			http.Error(w, "run history disabled", http.StatusNotFound)
			return
		}
		limit := 20
		if v := r.URL.Query().Get("limit"); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 || n > 100 {
				http.Error(w, "limit must be 1..100", http.StatusBadRequest)
				return
			}
			limit = n
		}
		runs, err := s.runs.ListRecent(r.Context(), chi.URLParam(r, "roomID"), limit)
		if err != nil {
			log.Error().Err(err).Str("component", "httpops").Msg("list runs")
			http.Error(w, "failed to list runs", http.StatusInternalServerError)
			return
		}
		if runs == nil {
			runs = []storage.TournamentRun{}
		}
		writeJSON(w, http.StatusOK, runs)
	})
}

// Start sirve hasta que ctx se cancela y después hace shutdown ordenado.
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	errc := make(chan error, 1)
	go func() {
		log.Info().Str("component", "httpops").Str("addr", addr).Msg("http listening")
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(sctx)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Warn().Err(err).Str("component", "httpops").Msg("encode response")
	}
}

func requestLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Debug().
			Str("component", "httpops").
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}
