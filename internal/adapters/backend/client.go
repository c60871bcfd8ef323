// internal/adapters/backend/client.go
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"redproduct_console/internal/adapters/observability"
	"redproduct_console/internal/domain"
)

// RequestError is a non-2xx backend response. Body carries the raw response
// text; callers decide whether to parse it (e.g. register field errors) or
// swap in a generic message.
type RequestError struct {
	Status int
	Body   string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("backend: status %d: %s", e.Status, truncate(e.Body, 200))
}

func truncate(s string, n int) string {
	s = strings.TrimSpace(s)
	if len(s) > n {
		return s[:n] + "..."
	}
	return s
}

// FieldErrors extracts the backend's field→messages validation map from a
// RequestError body. Returns false when the body is not such a map.
func FieldErrors(err error) (map[string][]string, bool) {
	var re *RequestError
	if !errors.As(err, &re) {
		return nil, false
	}
	var m map[string][]string
	if jsonErr := json.Unmarshal([]byte(re.Body), &m); jsonErr != nil || len(m) == 0 {
		return nil, false
	}
	return m, true
}

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
}

// New builds a client for the REST backend. base is the API root
// (e.g. http://localhost:8000/api); a trailing slash is normalized away.
func New(base string, rps int) *Client {
	if rps <= 0 {
		rps = 20
	}
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
}

// ---- Auth ----

func (c *Client) Register(ctx context.Context, reg domain.Registration) (domain.User, error) {
	var u domain.User
	err := c.doJSON(ctx, http.MethodPost, "/auth/register/", "", reg, &u)
	return u, err
}

func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	payload := map[string]string{"email": email, "password": password}
	var resp struct {
		Access string `json:"access"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login/", "", payload, &resp); err != nil {
		return "", err
	}
	return resp.Access, nil
}

func (c *Client) ListUsers(ctx context.Context, token string) ([]domain.User, error) {
	return list[domain.User](ctx, c, token, "/auth/users/")
}

// ---- Hotels ----

func (c *Client) ListHotels(ctx context.Context, token, search string) ([]domain.Hotel, error) {
	path := "/hotels/"
	if search != "" {
		path += "?search=" + url.QueryEscape(search)
	}
	return list[domain.Hotel](ctx, c, token, path)
}

// CreateHotel posts the form as multipart, attaching the image part only when
// one was supplied.
func (c *Client) CreateHotel(ctx context.Context, token string, h domain.NewHotel) (domain.Hotel, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"nom":           h.Nom,
		"adresse":       h.Adresse,
		"email":         h.Email,
		"telephone":     h.Telephone,
		"prix_par_nuit": h.PrixParNuit,
		"devise":        h.Devise,
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return domain.Hotel{}, err
		}
	}
	if h.Image != nil {
		fw, err := mw.CreateFormFile("image", h.Image.Filename)
		if err != nil {
			return domain.Hotel{}, err
		}
		if _, err := fw.Write(h.Image.Data); err != nil {
			return domain.Hotel{}, err
		}
	}
	if err := mw.Close(); err != nil {
		return domain.Hotel{}, err
	}

	var out domain.Hotel
	err := c.do(ctx, http.MethodPost, "/hotels/", token, &body, mw.FormDataContentType(), &out)
	return out, err
}

// ---- Dashboard ----

func (c *Client) DashboardStats(ctx context.Context, token string) (domain.DashboardStats, error) {
	var s domain.DashboardStats
	err := c.doJSON(ctx, http.MethodGet, "/auth/dashboard/stats/", token, nil, &s)
	return s, err
}

// ---- Messages ----

func (c *Client) ListMessages(ctx context.Context, token, filter string) ([]domain.Message, error) {
	if !domain.ValidFilter(filter) {
		filter = domain.FilterAll
	}
	return list[domain.Message](ctx, c, token, "/messages/?type="+filter)
}

func (c *Client) SendMessage(ctx context.Context, token string, destinataireID int64, sujet, contenu string) (domain.Message, error) {
	payload := map[string]any{
		"destinataire_id": destinataireID,
		"sujet":           sujet,
		"contenu":         contenu,
	}
	var m domain.Message
	err := c.doJSON(ctx, http.MethodPost, "/messages/", token, payload, &m)
	return m, err
}

func (c *Client) MarkMessageRead(ctx context.Context, token string, id int64) error {
	return c.doJSON(ctx, http.MethodPost, fmt.Sprintf("/messages/%d/marquer_lu/", id), token, nil, nil)
}

// DeleteMessage reports success as a flag; a failed delete is not an error,
// matching the backend contract.
func (c *Client) DeleteMessage(ctx context.Context, token string, id int64) (bool, error) {
	err := c.doJSON(ctx, http.MethodDelete, fmt.Sprintf("/messages/%d/", id), token, nil, nil)
	if err != nil {
		var re *RequestError
		if errors.As(err, &re) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// ---- Internals ----

// list fetches a collection endpoint, accepting either a bare array or a
// paginated {results: [...]} envelope. Any other shape yields an empty slice.
func list[T any](ctx context.Context, c *Client, token, path string) ([]T, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, path, token, nil, &raw); err != nil {
		return nil, err
	}
	return decodeList[T](raw), nil
}

func decodeList[T any](raw json.RawMessage) []T {
	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items
	}
	var env struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(raw, &env); err == nil && env.Results != nil {
		return env.Results
	}
	return []T{}
}

func (c *Client) doJSON(ctx context.Context, method, path, token string, payload, out any) error {
	var body io.Reader
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	return c.do(ctx, method, path, token, body, contentType, out)
}

// do performs one request with client-side rate limiting. No retries: failures
// surface to the caller, which renders them inline.
func (c *Client) do(ctx context.Context, method, path, token string, body io.Reader, contentType string, out any) error {
	if err := c.rl.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal("backend", endpointLabel(path), 0, time.Since(start))
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}
	defer resp.Body.Close()
	observability.ObserveExternal("backend", endpointLabel(path), resp.StatusCode, time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return &RequestError{Status: resp.StatusCode, Body: string(b)}
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// endpointLabel strips ids and query strings so metric labels stay bounded.
func endpointLabel(path string) string {
	if i := strings.IndexByte(path, '?'); i >= 0 {
		path = path[:i]
	}
	parts := strings.Split(path, "/")
	for i, p := range parts {
		if isDigits(p) {
			parts[i] = "{id}"
		}
	}
	return strings.Join(parts, "/")
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}
