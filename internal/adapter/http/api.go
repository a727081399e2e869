package http

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/quarterlight/crimescope/internal/domain"
	"github.com/quarterlight/crimescope/internal/projection"
)

type metaResponse struct {
	Cities     []string       `json:"cities"`
	Categories []categoryInfo `json:"categories"`
	Years      yearRange      `json:"years"`
	Defaults   metaDefaults   `json:"defaults"`
	Records    int            `json:"records"`
	LoadedAt   time.Time      `json:"loadedAt"`
}

type categoryInfo struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type yearRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type metaDefaults struct {
	Year     int `json:"year"`
	PageSize int `json:"pageSize"`
}

type mapResponse struct {
	Year    int                 `json:"year"`
	Markers []projection.Marker `json:"markers"`
}

// handleMeta describes the loaded dataset so the page can build its controls
// without hardcoding cities or year bounds.
func (s *Server) handleMeta(w http.ResponseWriter, _ *http.Request) {
	minYear, maxYear := s.store.Years()

	cats := make([]categoryInfo, 0, len(domain.Categories()))
	for _, c := range domain.Categories() {
		cats = append(cats, categoryInfo{ID: string(c), Label: c.Display()})
	}

	writeJSON(w, http.StatusOK, metaResponse{
		Cities:     s.store.Cities(),
		Categories: cats,
		Years:      yearRange{Min: minYear, Max: maxYear},
		Defaults:   metaDefaults{Year: minYear, PageSize: projection.DefaultPageSize},
		Records:    s.store.Len(),
		LoadedAt:   s.store.LoadedAt(),
	})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	year, err := intParam(r, "year", 0)
	if err != nil {
		badRequest(w, err)
		return
	}

	writeJSON(w, http.StatusOK, mapResponse{
		Year:    year,
		Markers: projection.MapIntensity(s.store, year, selectedCategories(r)),
	})
}

func (s *Server) handleCitySeries(w http.ResponseWriter, r *http.Request) {
	city := r.URL.Query().Get("city")
	writeJSON(w, http.StatusOK, projection.CitySeries(s.store, city, selectedCategories(r)))
}

func (s *Server) handleCityTable(w http.ResponseWriter, r *http.Request) {
	page, err := intParam(r, "page", 1)
	if err != nil {
		badRequest(w, err)
		return
	}
	pageSize, err := intParam(r, "pageSize", projection.DefaultPageSize)
	if err != nil {
		badRequest(w, err)
		return
	}

	city := r.URL.Query().Get("city")
	writeJSON(w, http.StatusOK, projection.CompareCity(s.store, s.agg, city, page, pageSize))
}

// selectedCategories reads the comma-separated categories parameter. An
// absent parameter means all categories; unknown names are dropped, so a
// present-but-empty parameter selects nothing.
func selectedCategories(r *http.Request) domain.CategorySet {
	raw, ok := r.URL.Query()["categories"]
	if !ok {
		return domain.NewCategorySet(domain.Categories()...)
	}

	var names []string
	for _, v := range raw {
		for _, tok := range strings.Split(v, ",") {
			if tok = strings.TrimSpace(tok); tok != "" {
				names = append(names, tok)
			}
		}
	}
	return domain.ParseCategorySet(names)
}

func intParam(r *http.Request, name string, fallback int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: must be an integer", name, v)
	}
	return n, nil
}

func badRequest(w http.ResponseWriter, err error) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
}
