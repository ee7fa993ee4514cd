package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/handlers"
)

func init() { Register(registerReload, admin) }

func registerReload(r chi.Router, d deps.Deps) {
	r.Post("/reload", handlers.Reload(d))
}
