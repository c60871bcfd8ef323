package app

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/rs/zerolog/log"

	"redproduct_console/internal/adapters/backend"
	"redproduct_console/internal/domain"
)

// FormError is a user-facing validation message, already phrased for display.
// Any other error from the service should be rendered as a generic message.
type FormError struct{ Message string }

func (e *FormError) Error() string { return e.Message }

// Service drives the console views against the backend. It holds no state:
// every call re-fetches what the view needs.
type Service struct {
	backend domain.BackendClient
}

func NewService(b domain.BackendClient) *Service { return &Service{backend: b} }

// ---- Auth ----

// Login exchanges credentials for a bearer token. The caller owns where the
// token lives (session store); an empty token counts as a failed login.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	token, err := s.backend.Login(ctx, email, password)
	if err != nil {
		return "", err
	}
	if token == "" {
		return "", errors.New("login: empty access token")
	}
	return token, nil
}

// Register submits the registration form. The terms flag is the only local
// precondition; backend field errors come back as a FormError showing the
// first field's first message (fields sorted for determinism).
func (s *Service) Register(ctx context.Context, reg domain.Registration, acceptTerms bool) error {
	if !acceptTerms {
		return &FormError{Message: "Veuillez accepter les termes et conditions"}
	}
	_, err := s.backend.Register(ctx, reg)
	if err == nil {
		return nil
	}
	if fields, ok := backend.FieldErrors(err); ok {
		names := make([]string, 0, len(fields))
		for f := range fields {
			names = append(names, f)
		}
		sort.Strings(names)
		for _, f := range names {
			if len(fields[f]) > 0 {
				return &FormError{Message: fmt.Sprintf("%s: %s", f, fields[f][0])}
			}
		}
	}
	return err
}

// ---- Dashboard ----

func (s *Service) Dashboard(ctx context.Context, token string) (domain.DashboardStats, error) {
	return s.backend.DashboardStats(ctx, token)
}

// ---- Hotels ----

// Hotels lists hotels for the current search text. A failed fetch degrades to
// an empty grid instead of blocking the view.
func (s *Service) Hotels(ctx context.Context, token, search string) []domain.Hotel {
	hotels, err := s.backend.ListHotels(ctx, token, search)
	if err != nil {
		log.Warn().Err(err).Str("search", search).Msg("hotel list fetch failed")
		return []domain.Hotel{}
	}
	return hotels
}

func (s *Service) CreateHotel(ctx context.Context, token string, h domain.NewHotel) error {
	if !domain.ValidDevise(h.Devise) {
		h.Devise = domain.DeviseXOF
	}
	_, err := s.backend.CreateHotel(ctx, token, h)
	return err
}

// ---- Messages ----

// Inbox is one render of the messages view: the filtered list plus the
// currently opened message, if any.
type Inbox struct {
	Filter   string
	Items    []domain.Message
	Selected *domain.Message
}

// OpenMessages fetches the filtered list and resolves the selection. Opening
// an unread message under the received filter marks it read exactly once and
// refreshes the list; an already-read message triggers no call.
func (s *Service) OpenMessages(ctx context.Context, token, filter string, selectedID int64) Inbox {
	if !domain.ValidFilter(filter) {
		filter = domain.FilterAll
	}
	items := s.fetchMessages(ctx, token, filter)
	box := Inbox{Filter: filter, Items: items}
	if selectedID == 0 {
		return box
	}

	sel := findMessage(items, selectedID)
	if sel == nil {
		return box
	}
	if filter == domain.FilterReceived && !sel.EstLu {
		if err := s.backend.MarkMessageRead(ctx, token, sel.ID); err != nil {
			log.Warn().Err(err).Int64("id", sel.ID).Msg("mark read failed")
		} else {
			box.Items = s.fetchMessages(ctx, token, filter)
			if refreshed := findMessage(box.Items, selectedID); refreshed != nil {
				sel = refreshed
			}
		}
	}
	box.Selected = sel
	return box
}

func (s *Service) fetchMessages(ctx context.Context, token, filter string) []domain.Message {
	items, err := s.backend.ListMessages(ctx, token, filter)
	if err != nil {
		log.Warn().Err(err).Str("filter", filter).Msg("message list fetch failed")
		return []domain.Message{}
	}
	return items
}

func findMessage(items []domain.Message, id int64) *domain.Message {
	for i := range items {
		if items[i].ID == id {
			m := items[i]
			return &m
		}
	}
	return nil
}

// SendMessage requires recipient, subject and body before any network call.
func (s *Service) SendMessage(ctx context.Context, token string, destinataireID int64, sujet, contenu string) error {
	if destinataireID == 0 || sujet == "" || contenu == "" {
		return &FormError{Message: "Veuillez remplir tous les champs"}
	}
	_, err := s.backend.SendMessage(ctx, token, destinataireID, sujet, contenu)
	return err
}

func (s *Service) DeleteMessage(ctx context.Context, token string, id int64) error {
	ok, err := s.backend.DeleteMessage(ctx, token, id)
	if err != nil {
		return err
	}
	if !ok {
		return errors.New("delete refused by backend")
	}
	return nil
}

// Users loads the recipient directory; failures degrade to an empty selector.
func (s *Service) Users(ctx context.Context, token string) []domain.User {
	users, err := s.backend.ListUsers(ctx, token)
	if err != nil {
		log.Warn().Err(err).Msg("user list fetch failed")
		return []domain.User{}
	}
	return users
}
