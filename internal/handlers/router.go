package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// API groups the console handlers mounted under /api.
type API struct {
	Session      *SessionHandler
	Users        *UserHandler
	NP           *NPHandler
	Reports      *ReportHandler
	Songs        *SongHandler
	Applications *ApplicationHandler
	Contact      *ContactHandler
}

// Routes registers the console API on r. auth guards every route except
// session creation.
func (a *API) Routes(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Post("/session", a.Session.Create)

	r.Group(func(r chi.Router) {
		r.Use(auth)

		r.Delete("/session", a.Session.Delete)

		r.Route("/users", func(r chi.Router) {
			r.Get("/", a.Users.List)
			r.Get("/suspended", a.Users.ListSuspended)
			r.Route("/{userId}", func(r chi.Router) {
				r.Post("/suspend", a.Users.Suspend)
				r.Post("/ban", a.Users.Ban)
				r.Post("/unban", a.Users.Unban)
				r.Put("/artist-level", a.Users.SetArtistLevel)
				r.Put("/admin", a.Users.SetAdmin)
			})
		})

		r.Route("/np/users", func(r chi.Router) {
			r.Get("/", a.NP.FindUser)
			r.Get("/{userId}/ledger", a.NP.Ledger)
			r.Post("/{userId}/charge", a.NP.Charge)
			r.Post("/{userId}/deduct", a.NP.Deduct)
		})

		r.Route("/reports", func(r chi.Router) {
			r.Get("/", a.Reports.List)
			r.Get("/guilty", a.Reports.ListGuilty)
			r.Delete("/guilty/{reportId}", a.Reports.DeleteGuilty)
			r.Post("/{reportId}/innocent", a.Reports.Innocent)
			r.Post("/{reportId}/guilty", a.Reports.Guilty)
		})

		r.Route("/songs", func(r chi.Router) {
			r.Get("/", a.Songs.List)
			r.Post("/{songId}/{action}", a.Songs.Transition)
			r.Delete("/{songId}", a.Songs.Purge)
		})

		r.Route("/applications", func(r chi.Router) {
			r.Get("/", a.Applications.List)
			r.Get("/count", a.Applications.Count)
			r.Post("/{applicationId}/{action}", a.Applications.Act)
			r.Delete("/{applicationId}", a.Applications.Delete)
		})

		r.Route("/contact", func(r chi.Router) {
			r.Get("/", a.Contact.List)
			r.Post("/{messageId}/resolve", a.Contact.Resolve)
			r.Delete("/{messageId}", a.Contact.Delete)
		})
	})
}
