package domain

import "time"

// Message filters accepted by the backend's list endpoint.
const (
	FilterAll      = "all"
	FilterReceived = "received"
	FilterSent     = "sent"
)

func ValidFilter(f string) bool {
	return f == FilterAll || f == FilterReceived || f == FilterSent
}

type Message struct {
	ID              int64     `json:"id"`
	ExpediteurNom   string    `json:"expediteur_nom"`
	DestinataireNom string    `json:"destinataire_nom"`
	Sujet           string    `json:"sujet"`
	Contenu         string    `json:"contenu"`
	DateEnvoi       time.Time `json:"date_envoi"`
	EstLu           bool      `json:"est_lu"`
}

// User is the directory projection used for recipient selection and
// contributor listings.
type User struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}
