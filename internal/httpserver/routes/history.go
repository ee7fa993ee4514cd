package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/handlers"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Route("/history", func(r chi.Router) {
		r.Get("/", handlers.ListHistory(d))
		r.With(writes(d)).Post("/", handlers.CreateHistory(d))

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", handlers.GetHistory(d))
			r.With(writes(d)).Delete("/", handlers.DeleteHistory(d))
			r.Get("/actions", handlers.ListActions(d))
			r.With(writes(d)).Post("/actions/{n}", handlers.InvokeAction(d))
		})
	})
}
