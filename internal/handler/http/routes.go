package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/token", h.issueToken)
		r.Get("/api/version/", h.getServerVersion)
	})

	// routes that act on behalf of an authenticated caller
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/user/register", h.registerUser)
		r.Put("/api/user/key", h.updateEncryptionKey)

		r.Post("/api/notes", h.createNote)
		r.Get("/api/notes", h.listNotes)
		r.Get("/api/notes/count", h.getNoteCount)
		r.Get("/api/notes/{id}", h.getNote)
		r.Put("/api/notes/{id}", h.updateNote)
		r.Delete("/api/notes/{id}", h.deleteNote)

		r.Post("/api/crypto/encrypt", h.encrypt)
		r.Post("/api/crypto/decrypt", h.decrypt)
		r.Get("/api/contract/address", h.contractAddress)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
