package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"redproduct_console/internal/app"
	"redproduct_console/internal/domain"
)

// getMessages renders the inbox: filtered list, optional opened message,
// optional compose form. Opening happens via ?selected=<id>; the service
// handles the mark-read-on-open rule.
func (h *Handlers) getMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := q.Get("type")
	selected, _ := strconv.ParseInt(q.Get("selected"), 10, 64)
	compose := q.Get("compose") != ""

	token := tokenFrom(r.Context())
	box := h.Svc.OpenMessages(r.Context(), token, filter, selected)

	data := map[string]any{
		"Active":  "messages",
		"Box":     box,
		"Compose": compose,
	}
	if compose {
		data["Users"] = h.Svc.Users(r.Context(), token)
	}
	render(w, http.StatusOK, "messages.html", data)
}

func (h *Handlers) postSendMessage(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	destID, _ := strconv.ParseInt(r.PostFormValue("destinataire_id"), 10, 64)
	sujet := r.PostFormValue("sujet")
	contenu := r.PostFormValue("contenu")
	filter := r.PostFormValue("filter")

	token := tokenFrom(r.Context())
	if err := h.Svc.SendMessage(r.Context(), token, destID, sujet, contenu); err != nil {
		msg := "Erreur lors de l'envoi du message"
		var fe *app.FormError
		if errors.As(err, &fe) {
			msg = fe.Message
		}
		box := h.Svc.OpenMessages(r.Context(), token, filter, 0)
		render(w, http.StatusOK, "messages.html", map[string]any{
			"Active":  "messages",
			"Box":     box,
			"Compose": true,
			"Users":   h.Svc.Users(r.Context(), token),
			"Error":   msg,
			"Draft": map[string]any{
				"DestinataireID": destID,
				"Sujet":          sujet,
				"Contenu":        contenu,
			},
		})
		return
	}
	// sent: switch the filter and refresh
	http.Redirect(w, r, "/messages?type="+domain.FilterSent, http.StatusSeeOther)
}

// postDeleteMessage removes a message after the browser-side confirmation and
// clears the selection by redirecting without it.
func (h *Handlers) postDeleteMessage(w http.ResponseWriter, r *http.Request) {
	_ = r.ParseForm()
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Redirect(w, r, "/messages", http.StatusSeeOther)
		return
	}
	filter := r.PostFormValue("filter")
	if !domain.ValidFilter(filter) {
		filter = domain.FilterAll
	}
	if err := h.Svc.DeleteMessage(r.Context(), tokenFrom(r.Context()), id); err != nil {
		log.Warn().Err(err).Int64("id", id).Msg("delete message failed")
	}
	http.Redirect(w, r, "/messages?type="+filter, http.StatusSeeOther)
}
