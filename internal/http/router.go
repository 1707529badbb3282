package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	billHandler "github.com/billsnap/billsnap/internal/http/bill"
	paymentHandler "github.com/billsnap/billsnap/internal/http/payment"
	visionHandler "github.com/billsnap/billsnap/internal/http/vision"
	"github.com/billsnap/billsnap/internal/middleware"
)

func New(
	billsV1 *billHandler.Handler,
	paymentsV1 *paymentHandler.Handler,
	visionV1 *visionHandler.Handler,
	jwtSecret string,
) http.Handler {
	router := chi.NewRouter()

	router.Use(chimw.Logger)
	router.Use(chimw.Recoverer)

	// Share links are opened from anywhere, so the API serves a browser
	// client on a different origin.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	auth := middleware.Auth(jwtSecret)

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/bills", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))

			billsV1.PublicRoutes(r)
			paymentsV1.SettlementRoutes(r)

			r.Group(func(r chi.Router) {
				r.Use(auth)
				billsV1.OwnerRoutes(r)
				paymentsV1.OwnerSettlementRoutes(r)
			})
		})

		r.Route("/payments", func(r chi.Router) {
			r.Use(chimw.AllowContentType("application/json"))
			paymentsV1.Routes(r)
		})

		r.Route("/parse-bill", func(r chi.Router) {
			r.Use(auth)
			visionV1.Routes(r)
		})
	})

	return router
}
