package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, withLogging, withGZip)

	router.Get("/api/version", h.getVersion)

	router.Route("/api/sync", func(r chi.Router) {
		r.Get("/status", h.getSyncStatus)
		r.Post("/", h.startSync)
	})

	router.Route("/api/conflicts", func(r chi.Router) {
		r.Get("/", h.getConflicts)
		r.Get("/unresolved", h.getUnresolvedConflicts)
		r.Get("/history", h.getConflictHistory)
		r.Delete("/resolved", h.clearResolvedConflicts)
		r.Post("/resolve-all/local", h.resolveAllKeepLocal)
		r.Post("/resolve-all/remote", h.resolveAllKeepRemote)

		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.getConflict)
			r.Post("/resolve/local", h.resolveKeepLocal)
			r.Post("/resolve/remote", h.resolveKeepRemote)
			r.Post("/resolve/merge", h.resolveWithMerge)
		})
	})

	router.Route("/api/pending", func(r chi.Router) {
		r.Get("/", h.getPendingChanges)
		r.Post("/", h.trackLocalChange)
	})

	router.Route("/api/settings", func(r chi.Router) {
		r.Get("/auto-resolve", h.getAutoResolveStrategy)
		r.Put("/auto-resolve", h.setAutoResolveStrategy)
	})

	router.Put("/api/connectivity", h.setConnectivity)

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
