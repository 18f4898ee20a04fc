package httpapi

import (
	"net/http"
	"strconv"

	"github.com/shearbook/shearbook/internal/domain"
)

type locationDTO struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

type barberDTO struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Photo      string  `json:"photo,omitempty"`
	Languages  string  `json:"languages,omitempty"`
	Rating     float64 `json:"rating"`
	LocationID int64   `json:"location_id"`
}

type serviceDTO struct {
	ID              int64    `json:"id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	PriceMin        float64  `json:"price_min"`
	PriceMax        *float64 `json:"price_max,omitempty"`
}

func (s *Server) handleListLocations(w http.ResponseWriter, r *http.Request) {
	locations, err := s.opts.Locations.List(r.Context())
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	out := make([]locationDTO, 0, len(locations))
	for _, loc := range locations {
		out = append(out, locationDTO{
			ID:      loc.ID,
			Name:    loc.Name,
			Address: loc.Address,
			Phone:   loc.Phone,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"locations": out})
}

func (s *Server) handleListBarbers(w http.ResponseWriter, r *http.Request) {
	var (
		barbers []domain.Barber
		err     error
	)

	if raw := r.URL.Query().Get("location_id"); raw != "" {
		locationID, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "location_id must be an integer")
			return
		}
		barbers, err = s.opts.Barbers.ListByLocation(r.Context(), locationID)
	} else {
		barbers, err = s.opts.Barbers.List(r.Context())
	}

	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	out := make([]barberDTO, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, barberDTO{
			ID:         b.ID,
			Name:       b.Name,
			Photo:      b.Photo,
			Languages:  b.Languages,
			Rating:     b.Rating,
			LocationID: b.LocationID,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"barbers": out})
}

func (s *Server) handleListServices(w http.ResponseWriter, r *http.Request) {
	services, err := s.opts.Services.List(r.Context())
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	out := make([]serviceDTO, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceDTO{
			ID:              svc.ID,
			Name:            svc.Name,
			DurationMinutes: svc.DurationMinutes,
			PriceMin:        svc.PriceMin,
			PriceMax:        svc.PriceMax,
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}
