package domain

import "context"

// BackendClient is the outbound surface of the REST backend, one method per
// operation. Methods taking a token attach it as a bearer credential;
// Register and Login are the only unauthenticated calls.
type BackendClient interface {
	Register(ctx context.Context, reg Registration) (User, error)
	Login(ctx context.Context, email, password string) (string, error)

	ListHotels(ctx context.Context, token, search string) ([]Hotel, error)
	CreateHotel(ctx context.Context, token string, h NewHotel) (Hotel, error)

	DashboardStats(ctx context.Context, token string) (DashboardStats, error)

	ListMessages(ctx context.Context, token, filter string) ([]Message, error)
	SendMessage(ctx context.Context, token string, destinataireID int64, sujet, contenu string) (Message, error)
	MarkMessageRead(ctx context.Context, token string, id int64) error
	DeleteMessage(ctx context.Context, token string, id int64) (bool, error)

	ListUsers(ctx context.Context, token string) ([]User, error)
}

// Registration is the register payload; password2 is the confirmation the
// backend validates server-side.
type Registration struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// SessionStore holds the backend token for the lifetime of a browser session.
// The session id is an opaque value set as a cookie; the token never reaches
// the browser.
type SessionStore interface {
	Create(ctx context.Context, token string, remember bool) (string, error)
	Token(ctx context.Context, sid string) (string, bool, error)
	Destroy(ctx context.Context, sid string) error
}
