// Package web serves the browser panel: an embedded single-page map UI
// that talks JSON-RPC to the WebSocket endpoint, plus a small JSON API
// for the district geography.
package web

import (
	"embed"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/marbleseoul/server/geo"
)

//go:embed index.html
var staticFS embed.FS

// Index serves the map panel.
func Index() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		page, err := staticFS.ReadFile("index.html")
		if err != nil {
			http.Error(w, "page unavailable", http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write(page)
	})
}

type districtFeature struct {
	Name     string    `json:"name"`
	Code     string    `json:"code,omitempty"`
	Center   geo.Coord `json:"center"`
	Adjacent []string  `json:"adjacent"`
}

// GeoDistricts returns the static district geography as JSON.
func GeoDistricts() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		names := geo.Districts()
		features := make([]districtFeature, 0, len(names))
		for _, name := range names {
			code, _ := geo.CodeByName(name)
			features = append(features, districtFeature{
				Name:     name,
				Code:     code,
				Center:   geo.Center(name),
				Adjacent: geo.Adjacent(name),
			})
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		if err := json.NewEncoder(w).Encode(features); err != nil {
			slog.Error("failed to encode district geography", "error", err)
		}
	})
}
