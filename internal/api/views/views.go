// Package views renders the tracker's HTML pages.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/ramonehamilton/PokePoke-Tracker/internal/stats"
)

// Page names.
const (
	Index        = "index"
	RegisterDeck = "register_deck"
	RecordMatch  = "record_match"
	Stats        = "stats"
	SelectDeck   = "select_deck"
	MatchHistory = "match_history"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(
	template.New("pages").
		Funcs(template.FuncMap{
			"winrate": stats.FormatWinRate,
			"streak":  stats.FormatStreak,
		}).
		ParseFS(templateFS, "templates/*.html"),
)

// Render executes the named page into a buffer and writes it with status.
// Nothing is written if the template fails.
func Render(w http.ResponseWriter, status int, name string, data interface{}) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}
