package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	coreauth "github.com/MrJamesThe3rd/medistock/internal/auth"
	"github.com/MrJamesThe3rd/medistock/internal/http/auth"
	"github.com/MrJamesThe3rd/medistock/internal/http/export"
	"github.com/MrJamesThe3rd/medistock/internal/http/importcsv"
	"github.com/MrJamesThe3rd/medistock/internal/http/inventory"
	"github.com/MrJamesThe3rd/medistock/internal/http/report"
	"github.com/MrJamesThe3rd/medistock/internal/http/sales"
)

func New(
	authSvc *coreauth.Service,
	authV1 *auth.Handler,
	inventoryV1 *inventory.Handler,
	salesV1 *sales.Handler,
	reportV1 *report.Handler,
	exportV1 *export.Handler,
	importV1 *importcsv.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	}))

	router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			authV1.Routes(r)
		})

		// Everything below requires a valid session token. The role claim is
		// advisory: staff can read every view, mutations require admin.
		r.Group(func(r chi.Router) {
			r.Use(auth.Authenticator(authSvc))

			r.Route("/inventory", func(r chi.Router) {
				inventoryV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin)
					r.Use(middleware.AllowContentType("application/json"))
					inventoryV1.AdminRoutes(r)
				})
			})

			r.Route("/sales", func(r chi.Router) {
				salesV1.Routes(r)

				r.Group(func(r chi.Router) {
					r.Use(auth.RequireAdmin)
					r.Use(middleware.AllowContentType("application/json"))
					salesV1.AdminRoutes(r)
				})
			})

			r.Route("/reports", reportV1.Routes)
			r.Route("/export", exportV1.Routes)

			r.Route("/import", func(r chi.Router) {
				r.Use(auth.RequireAdmin)
				importV1.Routes(r)
			})
		})
	})

	return router
}
