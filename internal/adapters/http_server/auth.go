package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"redproduct_console/internal/app"
	"redproduct_console/internal/domain"
)

func (h *Handlers) getLogin(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "login.html", map[string]any{"Email": ""})
}

// postLogin exchanges credentials for a token and opens a session. Failures
// always show the same generic message, never backend detail.
func (h *Handlers) postLogin(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")
	remember := r.PostFormValue("remember") != ""

	token, err := h.Svc.Login(r.Context(), email, password)
	if err != nil {
		render(w, http.StatusOK, "login.html", map[string]any{
			"Error": "E-mail ou mot de passe incorrect",
			"Email": email,
		})
		return
	}

	sid, err := h.Sessions.Create(r.Context(), token, remember)
	if err != nil {
		log.Error().Err(err).Msg("session create failed")
		render(w, http.StatusOK, "login.html", map[string]any{
			"Error": "E-mail ou mot de passe incorrect",
			"Email": email,
		})
		return
	}
	setSessionCookie(w, sid, remember, h.RememberTTL)
	http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
}

func (h *Handlers) getRegister(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "register.html", map[string]any{"Form": domain.Registration{}})
}

func (h *Handlers) postRegister(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	reg := domain.Registration{
		Username:  r.PostFormValue("username"),
		Email:     r.PostFormValue("email"),
		Password:  r.PostFormValue("password"),
		Password2: r.PostFormValue("password2"),
		FirstName: r.PostFormValue("first_name"),
		LastName:  r.PostFormValue("last_name"),
	}
	acceptTerms := r.PostFormValue("accept_terms") != ""

	if err := h.Svc.Register(r.Context(), reg, acceptTerms); err != nil {
		msg := "Erreur lors de l'inscription"
		var fe *app.FormError
		if errors.As(err, &fe) {
			msg = fe.Message
		}
		render(w, http.StatusOK, "register.html", map[string]any{
			"Error": msg,
			"Form":  reg,
		})
		return
	}
	render(w, http.StatusOK, "register.html", map[string]any{"Success": true})
}

func (h *Handlers) getForgot(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "forgot.html", nil)
}

// postForgot only flips the local "sent" flag; no reset endpoint is wired on
// the backend yet.
func (h *Handlers) postForgot(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	render(w, http.StatusOK, "forgot.html", map[string]any{"Sent": true})
}

func (h *Handlers) postLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		if err := h.Sessions.Destroy(r.Context(), c.Value); err != nil {
			log.Error().Err(err).Msg("session destroy failed")
		}
	}
	clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}
