package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/handlers"
)

func init() { Register(registerResolve) }

func registerResolve(r chi.Router, d deps.Deps) {
	r.With(writes(d)).Post("/resolve", handlers.Resolve(d))
}
