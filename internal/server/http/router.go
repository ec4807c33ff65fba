package http

import (
	"net/http"

	"github.com/dmitrijs2005/usersvc/internal/logging"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the public and token-protected routes.
func NewRouter(l logging.Logger, us UserService, secretKey []byte, exposeErrors bool) http.Handler {
	h := &handlers{
		users:        us,
		logger:       l,
		jwtSecret:    secretKey,
		exposeErrors: exposeErrors,
	}

	r := chi.NewRouter()
	r.Use(requestID)
	r.Use(chimw.RealIP)
	r.Use(accessLog(l))
	r.Use(chimw.Recoverer)

	r.Get("/", h.index)
	r.Post("/users", h.register)
	r.Post("/login", h.login)
	r.Post("/logout", h.logout)

	r.Group(func(r chi.Router) {
		r.Use(h.bearerAuth)
		r.Get("/users", h.listUsers)
		r.Get("/users/{id}", h.getUser)
		r.Put("/users/{id}", h.updateUser)
		r.Delete("/users/{id}", h.deleteUser)
	})

	return r
}
