package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/qrhist/internal/httpserver/deps"
	"github.com/MrSnakeDoc/qrhist/internal/httpserver/mw"
)

type (
	Registrar  func(r chi.Router, d deps.Deps)
	Middleware = func(http.Handler) http.Handler
	// Guard builds per-route middlewares once deps are known.
	Guard func(d deps.Deps) []Middleware
)

type entry struct {
	reg    Registrar
	guards []Guard
}

var registry []entry

// Register a registrar with optional per-route guards.
func Register(reg Registrar, guards ...Guard) {
	registry = append(registry, entry{reg: reg, guards: guards})
}

// RegisterAll is called once from server.New()
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, e := range registry {
		var mws []Middleware
		for _, g := range e.guards {
			mws = append(mws, g(d)...)
		}
		if len(mws) == 0 {
			e.reg(r, d)
			continue
		}
		sub := r.With(mws...) // apply per-route middlewares
		e.reg(sub, d)
	}
}

// admin guards operator routes with the IP allow-list and the Host check.
func admin(d deps.Deps) []Middleware {
	return []Middleware{
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	}
}

// writes applies the shared per-IP rate limiter, if any.
func writes(d deps.Deps) Middleware {
	if d.WriteLimiter == nil {
		return func(next http.Handler) http.Handler { return next }
	}
	return d.WriteLimiter
}
