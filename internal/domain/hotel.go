package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// Supported currencies for nightly prices.
const (
	DeviseXOF = "XOF"
	DeviseEUR = "EUR"
	DeviseUSD = "USD"
)

var Devises = []string{DeviseXOF, DeviseEUR, DeviseUSD}

func ValidDevise(d string) bool {
	for _, v := range Devises {
		if v == d {
			return true
		}
	}
	return false
}

// Montant is a decimal amount on the wire. The backend serializes decimals
// either as a JSON number or as a quoted string ("45000.00"); both decode.
type Montant float64

func (m *Montant) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		*m = 0
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
		if s == "" {
			*m = 0
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return err
		}
		*m = Montant(f)
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*m = Montant(f)
	return nil
}

func (m Montant) Float64() float64 { return float64(m) }

// Hotel is a read-only projection of a backend listing. Field names follow
// the backend wire format.
type Hotel struct {
	ID          int64   `json:"id"`
	Nom         string  `json:"nom"`
	Adresse     string  `json:"adresse"`
	Email       string  `json:"email"`
	Telephone   string  `json:"telephone"`
	PrixParNuit Montant `json:"prix_par_nuit"`
	Devise      string  `json:"devise"`
	Image       string  `json:"image,omitempty"`
}

// NewHotel carries the create-hotel form fields plus an optional image
// attachment, passed through to the backend as multipart form data.
type NewHotel struct {
	Nom         string
	Adresse     string
	Email       string
	Telephone   string
	PrixParNuit string
	Devise      string
	Image       *Upload
}

// Upload is an in-memory file attachment.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}
