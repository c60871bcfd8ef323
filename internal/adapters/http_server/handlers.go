// internal/adapters/http_server/handlers.go
package httpserver

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"redproduct_console/internal/app"
	"redproduct_console/internal/domain"
)

type Handlers struct {
	Svc         *app.Service
	Sessions    domain.SessionStore
	RememberTTL time.Duration
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })

	s.mux.Group(func(r chi.Router) {
		r.Use(h.withSession)

		r.Get("/", h.root)

		// unauthenticated screens; session holders go straight to the dashboard
		r.Group(func(a chi.Router) {
			a.Use(redirectSession)
			a.Get("/login", h.getLogin)
			a.Post("/login", h.postLogin)
			a.Get("/register", h.getRegister)
			a.Post("/register", h.postRegister)
			a.Get("/forgot", h.getForgot)
			a.Post("/forgot", h.postForgot)
		})

		// everything behind the sidebar
		r.Group(func(p chi.Router) {
			p.Use(requireSession)
			p.Get("/dashboard", h.getDashboard)
			p.Get("/hotels", h.getHotels)
			p.Get("/hotels/new", h.getHotelNew)
			p.Post("/hotels", h.postHotel)
			p.Get("/messages", h.getMessages)
			p.Post("/messages/send", h.postSendMessage)
			p.Post("/messages/{id}/delete", h.postDeleteMessage)
			p.Post("/logout", h.postLogout)
		})
	})
}

// root sends an existing session to the dashboard and everyone else to login.
func (h *Handlers) root(w http.ResponseWriter, r *http.Request) {
	if tokenFrom(r.Context()) != "" {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (h *Handlers) getDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Svc.Dashboard(r.Context(), tokenFrom(r.Context()))
	if err != nil {
		render(w, http.StatusOK, "dashboard.html", map[string]any{
			"Active": "dashboard",
			"Error":  "Erreur lors du chargement des statistiques",
		})
		return
	}
	render(w, http.StatusOK, "dashboard.html", map[string]any{
		"Active": "dashboard",
		"Stats":  stats,
	})
}
