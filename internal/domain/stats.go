package domain

// StatBlock is one summary card on the dashboard. Absent fields render as
// zero / placeholder text, so the zero value is a valid block.
type StatBlock struct {
	Total    int    `json:"total"`
	Subtitle string `json:"subtitle"`
}

// HotelStats adds the per-currency breakdown to the plain counter.
type HotelStats struct {
	Total     int            `json:"total"`
	Subtitle  string         `json:"subtitle"`
	ParDevise map[string]int `json:"par_devise"`
	PrixMoyen Montant        `json:"prix_moyen"`
}

type Contributor struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	HotelsCount int    `json:"hotels_count"`
}

// DashboardStats is the aggregate snapshot served by the backend. Every field
// is optional on the wire; "endes" is passed through as-is, the backend does
// not document what it counts.
type DashboardStats struct {
	Formulaires     StatBlock     `json:"formulaires"`
	Messages        StatBlock     `json:"messages"`
	Utilisateurs    StatBlock     `json:"utilisateurs"`
	Emails          StatBlock     `json:"emails"`
	Endes           StatBlock     `json:"endes"`
	Hotels          *HotelStats   `json:"hotels"`
	TopContributors []Contributor `json:"top_contributors"`
}
