package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	authHandler "github.com/PUSHKARDEORE/Finalytics/internal/http/auth"
	"github.com/PUSHKARDEORE/Finalytics/internal/http/transaction"
)

func New(
	authV1 *authHandler.Handler,
	transactionsV1 *transaction.Handler,
	corsOrigins []string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   corsOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "x-auth-token"},
		AllowCredentials: true,
	}))

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", authV1.Routes)

		r.Route("/transactions", func(r chi.Router) {
			r.Use(authV1.Middleware)
			transactionsV1.Routes(r)
		})
	})

	return router
}
