package httpserver

import (
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"redproduct_console/internal/domain"
)

const maxImageBytes = 10 << 20

func (h *Handlers) getHotels(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")
	hotels := h.Svc.Hotels(r.Context(), tokenFrom(r.Context()), search)
	render(w, http.StatusOK, "hotels.html", map[string]any{
		"Active": "hotels",
		"Hotels": hotels,
		"Search": search,
	})
}

func (h *Handlers) getHotelNew(w http.ResponseWriter, r *http.Request) {
	render(w, http.StatusOK, "hotel_new.html", map[string]any{
		"Active":  "hotels",
		"Devises": domain.Devises,
		"Form":    domain.NewHotel{Devise: domain.DeviseXOF},
	})
}

// postHotel passes the form through as multipart. Validation belongs to the
// backend; an error keeps the user on the form with an inline message.
func (h *Handlers) postHotel(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageBytes); err != nil {
		h.renderHotelForm(w, r, domain.NewHotel{Devise: domain.DeviseXOF}, "Erreur lors de la création")
		return
	}
	form := domain.NewHotel{
		Nom:         r.PostFormValue("nom"),
		Adresse:     r.PostFormValue("adresse"),
		Email:       r.PostFormValue("email"),
		Telephone:   r.PostFormValue("telephone"),
		PrixParNuit: r.PostFormValue("prix_par_nuit"),
		Devise:      r.PostFormValue("devise"),
	}

	if f, fh, err := r.FormFile("image"); err == nil {
		data, readErr := io.ReadAll(io.LimitReader(f, maxImageBytes))
		f.Close()
		if readErr != nil {
			log.Warn().Err(readErr).Msg("image read failed")
		} else if len(data) > 0 {
			form.Image = &domain.Upload{
				Filename:    fh.Filename,
				ContentType: fh.Header.Get("Content-Type"),
				Data:        data,
			}
		}
	}

	if err := h.Svc.CreateHotel(r.Context(), tokenFrom(r.Context()), form); err != nil {
		log.Warn().Err(err).Msg("create hotel failed")
		h.renderHotelForm(w, r, form, "Erreur lors de la création")
		return
	}
	http.Redirect(w, r, "/hotels", http.StatusSeeOther)
}

func (h *Handlers) renderHotelForm(w http.ResponseWriter, r *http.Request, form domain.NewHotel, msg string) {
	render(w, http.StatusOK, "hotel_new.html", map[string]any{
		"Active":  "hotels",
		"Devises": domain.Devises,
		"Form":    form,
		"Error":   msg,
	})
}
