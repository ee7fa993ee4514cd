package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/handlers"
)

func init() { Register(registerSettings) }

func registerSettings(r chi.Router, d deps.Deps) {
	r.Get("/settings", handlers.GetSettings(d))
	r.With(writes(d)).Put("/settings", handlers.UpdateSettings(d))
	r.Get("/stats", handlers.Stats(d))
}
