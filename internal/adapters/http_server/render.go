package httpserver

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"redproduct_console/internal/domain"
)

//go:embed templates/*.html
var tplFS embed.FS

var funcs = template.FuncMap{
	"prix":     formatPrix,
	"date":     func(t time.Time) string { return t.Format("02/01/2006") },
	"datetime": func(t time.Time) string { return t.Format("02/01/2006 15:04") },
	"image": func(url string) string {
		if url == "" {
			return "https://via.placeholder.com/300x200"
		}
		return url
	},
}

// Auth screens are standalone documents; the rest share the sidebar layout.
var (
	authPages = []string{"login.html", "register.html", "forgot.html"}
	appPages  = []string{"dashboard.html", "hotels.html", "hotel_new.html", "messages.html"}
)

var pages = func() map[string]*template.Template {
	m := make(map[string]*template.Template, len(authPages)+len(appPages))
	for _, p := range authPages {
		m[p] = template.Must(template.New(p).Funcs(funcs).ParseFS(tplFS, "templates/"+p))
	}
	for _, p := range appPages {
		m[p] = template.Must(template.New("layout.html").Funcs(funcs).ParseFS(
			tplFS, "templates/layout.html", "templates/"+p))
	}
	return m
}()

func render(w http.ResponseWriter, status int, page string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := pages[page].Execute(w, data); err != nil {
		log.Error().Err(err).Str("page", page).Msg("template execute failed")
	}
}

// formatPrix renders "45 000 XOF" style amounts: grouped integer part, two
// decimals only when the rounded amount is not whole.
func formatPrix(m domain.Montant, devise string) string {
	cents := int64(math.Round(m.Float64() * 100))
	neg := cents < 0
	if neg {
		cents = -cents
	}
	whole := cents / 100
	frac := cents % 100

	s := strconv.FormatInt(whole, 10)
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(s[i : i+3])
	}
	out := b.String()
	if frac != 0 {
		out += fmt.Sprintf(".%02d", frac)
	}
	if neg {
		out = "-" + out
	}
	if devise != "" {
		out += " " + devise
	}
	return out
}
