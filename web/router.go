package web

import (
	"time"

	"github.com/Alt0Pal0/Gretch-2025-Rankings/controller"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/unrolled/render"
)

func getRouter(ctrl controller.C, render *render.Render, adminUser, adminPass string) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Set a timeout value on the request context (ctx), that will signal
	// through ctx.Done() that the request has timed out and further
	// processing should be stopped.
	r.Use(middleware.Timeout(10 * time.Second))

	r.Get("/", rootHandler(ctrl, render))

	r.Route("/api", func(r chi.Router) {
		r.Get("/players", playersHandler(ctrl, render))

		r.Route("/rankings", func(r chi.Router) {
			r.Post("/", updateRankingsHandler(ctrl, render))
			r.Post("/csv", uploadCSVHandler(ctrl, render))
		})

		r.Route("/versions", func(r chi.Router) {
			r.Get("/", versionsHandler(ctrl, render))
			r.Get("/{versionID:\\d+}", versionHandler(ctrl, render))
			r.Post("/{versionID:\\d+}/delta", deltaHandler(ctrl, render))
		})
	})

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.BasicAuth("rankings", map[string]string{adminUser: adminPass}))
		r.Use(middleware.Timeout(30 * time.Second)) // Set a longer timeout for /admin actions

		r.Delete("/versions/{versionID:\\d+}", deleteVersionHandler(ctrl, render))
	})

	return r
}
