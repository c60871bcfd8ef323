package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"redproduct_console/internal/adapters/backend"
	"redproduct_console/internal/domain"
)

func testCtx(t *testing.T) context.Context {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestLogin_ReturnsAccessToken(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login/" || r.Method != http.MethodPost {
			t.Fatalf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "" {
			t.Fatalf("login must not carry Authorization, got %q", auth)
		}
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["email"] != "admin@test.sn" || body["password"] != "secret" {
			t.Fatalf("unexpected payload: %+v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access": "tok-123"})
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)
	token, err := cl.Login(testCtx(t), "admin@test.sn", "secret")
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if token != "tok-123" {
		t.Fatalf("token: %q", token)
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail":"No active account found"}`))
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)
	_, err := cl.Login(testCtx(t), "x@y.z", "bad")
	var re *backend.RequestError
	if !errors.As(err, &re) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if re.Status != http.StatusUnauthorized {
		t.Fatalf("status: %d", re.Status)
	}
	if re.Body == "" {
		t.Fatalf("expected raw body to be carried")
	}
}

func TestListHotels_BareArrayAndEnvelope(t *testing.T) {
	payloads := map[string]string{
		"bare":     `[{"id":1,"nom":"Hôtel du Lac","prix_par_nuit":45000,"devise":"XOF"}]`,
		"envelope": `{"count":1,"results":[{"id":1,"nom":"Hôtel du Lac","prix_par_nuit":"45000.00","devise":"XOF"}]}`,
		"other":    `{"weird":true}`,
	}
	for name, body := range payloads {
		t.Run(name, func(t *testing.T) {
			ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Header.Get("Authorization") != "Bearer tok" {
					t.Fatalf("missing bearer header")
				}
				_, _ = w.Write([]byte(body))
			}))
			defer ts.Close()

			cl := backend.New(ts.URL, 100)
			hotels, err := cl.ListHotels(testCtx(t), "tok", "")
			if err != nil {
				t.Fatalf("err: %v", err)
			}
			want := 1
			if name == "other" {
				want = 0
			}
			if len(hotels) != want {
				t.Fatalf("%s: got %d hotels, want %d", name, len(hotels), want)
			}
			if want == 1 && hotels[0].PrixParNuit.Float64() != 45000 {
				t.Fatalf("price: %v", hotels[0].PrixParNuit)
			}
		})
	}
}

func TestListHotels_SearchQuery(t *testing.T) {
	var gotSearch string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSearch = r.URL.Query().Get("search")
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)
	if _, err := cl.ListHotels(testCtx(t), "tok", "du lac"); err != nil {
		t.Fatalf("err: %v", err)
	}
	if gotSearch != "du lac" {
		t.Fatalf("search param: %q", gotSearch)
	}
}

func TestCreateHotel_MultipartWithImage(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if r.FormValue("nom") != "Royal Suites" || r.FormValue("devise") != "XOF" {
			t.Fatalf("unexpected fields: %+v", r.MultipartForm.Value)
		}
		f, fh, err := r.FormFile("image")
		if err != nil {
			t.Fatalf("image part: %v", err)
		}
		defer f.Close()
		data, _ := io.ReadAll(f)
		if fh.Filename != "front.jpg" || string(data) != "jpegdata" {
			t.Fatalf("image: %q %q", fh.Filename, data)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":7,"nom":"Royal Suites","prix_par_nuit":"75000.00","devise":"XOF"}`))
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)
	h, err := cl.CreateHotel(testCtx(t), "tok", domain.NewHotel{
		Nom:         "Royal Suites",
		Adresse:     "456 Boulevard de la République, Dakar",
		Email:       "info@royalsuites.sn",
		Telephone:   "+221772345678",
		PrixParNuit: "75000",
		Devise:      "XOF",
		Image:       &domain.Upload{Filename: "front.jpg", ContentType: "image/jpeg", Data: []byte("jpegdata")},
	})
	if err != nil {
		t.Fatalf("err: %v", err)
	}
	if h.ID != 7 {
		t.Fatalf("hotel: %+v", h)
	}
}

func TestCreateHotel_NoImageOmitsPart(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if _, _, err := r.FormFile("image"); err == nil {
			t.Fatalf("image part should be absent")
		}
		_, _ = w.Write([]byte(`{"id":8}`))
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)
	if _, err := cl.CreateHotel(testCtx(t), "tok", domain.NewHotel{Nom: "Sans Photo", Devise: "EUR"}); err != nil {
		t.Fatalf("err: %v", err)
	}
}

func TestDeleteMessage_Flag(t *testing.T) {
	var status int
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodDelete {
			t.Fatalf("method: %s", r.Method)
		}
		w.WriteHeader(status)
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)

	status = http.StatusNoContent
	ok, err := cl.DeleteMessage(testCtx(t), "tok", 3)
	if err != nil || !ok {
		t.Fatalf("want success flag, got ok=%v err=%v", ok, err)
	}

	status = http.StatusNotFound
	ok, err = cl.DeleteMessage(testCtx(t), "tok", 3)
	if err != nil || ok {
		t.Fatalf("want ok=false err=nil, got ok=%v err=%v", ok, err)
	}
}

func TestMarkMessageRead_Path(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"est_lu":true}`))
	}))
	defer ts.Close()

	cl := backend.New(ts.URL, 100)
	if err := cl.MarkMessageRead(testCtx(t), "tok", 42); err != nil {
		t.Fatalf("err: %v", err)
	}
	if gotPath != "/messages/42/marquer_lu/" {
		t.Fatalf("path: %s", gotPath)
	}
}

func TestFieldErrors_Extraction(t *testing.T) {
	err := &backend.RequestError{
		Status: http.StatusBadRequest,
		Body:   `{"password2":["Les mots de passe ne correspondent pas."]}`,
	}
	fields, ok := backend.FieldErrors(err)
	if !ok {
		t.Fatalf("expected field errors")
	}
	if fields["password2"][0] != "Les mots de passe ne correspondent pas." {
		t.Fatalf("fields: %+v", fields)
	}

	if _, ok := backend.FieldErrors(&backend.RequestError{Status: 500, Body: "oops"}); ok {
		t.Fatalf("plain text body must not parse as field errors")
	}
	if _, ok := backend.FieldErrors(errors.New("network down")); ok {
		t.Fatalf("non-request errors must not parse")
	}
}
