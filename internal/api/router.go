package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/curiouscoder-cmd/mindmend-api/internal/api/middleware"
)

// NewRouter assembles the full route tree with the standard middleware
// chain. Shared by the server and the handler tests so routes cannot drift
// between them.
func NewRouter(sessions *SessionHandler, history *HistoryHandler) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.TraceMiddleware)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", sessions.CreateSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Post("/thought", sessions.AnalyzeThought)
				r.Post("/questions", sessions.GenerateQuestions)
				r.Post("/answers", sessions.SubmitAnswers)
				r.Post("/balance", sessions.Synthesize)
				r.Put("/balance", sessions.SetBalance)
				r.Post("/evaluate", sessions.Evaluate)
				r.Post("/save", sessions.SaveSession)
				r.Delete("/", sessions.ResetSession)
			})
		})

		r.Get("/history", history.ListSessions)
		r.Delete("/history/{id}", history.DeleteSession)
		r.Get("/stats", history.GetStats)
	})

	return r
}
