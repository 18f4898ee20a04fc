package httpapi

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/shearbook/shearbook/internal/assistant"
	"github.com/shearbook/shearbook/internal/booking"
	"github.com/shearbook/shearbook/internal/domain"
	"github.com/shearbook/shearbook/internal/repository"
)

type createAppointmentRequest struct {
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Email      string  `json:"email"`
	LocationID int64   `json:"location_id"`
	BarberID   string  `json:"barber_id"`
	Services   []int64 `json:"services"`
	Date       string  `json:"date"`
	Time       string  `json:"time"`
}

type appointmentDTO struct {
	ID          int64   `json:"id"`
	LocationID  int64   `json:"location_id"`
	BarberID    *int64  `json:"barber_id"`
	ClientName  string  `json:"client_name"`
	ClientEmail string  `json:"client_email"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	Services    []int64 `json:"services"`
	CreatedAt   string  `json:"created_at"`
}

func (s *Server) handleCreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req createAppointmentRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	clientName := strings.TrimSpace(strings.TrimSpace(req.FirstName) + " " + strings.TrimSpace(req.LastName))

	switch {
	case clientName == "":
		writeError(w, http.StatusBadRequest, "first_name is required")
		return
	case req.Email == "":
		writeError(w, http.StatusBadRequest, "email is required")
		return
	case req.LocationID == 0:
		writeError(w, http.StatusBadRequest, "location_id is required")
		return
	case len(req.Services) == 0:
		writeError(w, http.StatusBadRequest, "services are required")
		return
	case req.Time == "":
		writeError(w, http.StatusBadRequest, "time is required")
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return
	}

	// "any" or an empty barber_id means any available barber.
	var barberID *int64
	if raw := strings.TrimSpace(req.BarberID); raw != "" && raw != "any" {
		id, parseErr := strconv.ParseInt(raw, 10, 64)
		if parseErr != nil {
			writeError(w, http.StatusBadRequest, "barber_id must be an integer or \"any\"")
			return
		}
		barberID = &id
	}

	appointment, err := s.opts.Booking.WithChannel(booking.ChannelWeb).CreateAppointment(r.Context(), assistant.BookingRequest{
		LocationID:  req.LocationID,
		BarberID:    barberID,
		ClientName:  clientName,
		ClientEmail: strings.TrimSpace(req.Email),
		Date:        date,
		StartTime:   req.Time,
		ServiceIDs:  req.Services,
	})
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]any{
		"appointment": toAppointmentDTO(*appointment),
	})
}

func (s *Server) handleListAppointments(w http.ResponseWriter, r *http.Request) {
	var filter repository.AppointmentFilter

	query := r.URL.Query()

	if raw := query.Get("date"); raw != "" {
		date, err := time.Parse("2006-01-02", raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		filter.Date = &date
	}

	if raw := query.Get("location_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "location_id must be an integer")
			return
		}
		filter.LocationID = &id
	}

	if raw := query.Get("barber_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeError(w, http.StatusBadRequest, "barber_id must be an integer")
			return
		}
		filter.BarberID = &id
	}

	appointments, err := s.opts.Appointments.List(r.Context(), filter)
	if err != nil {
		s.writeAppError(r.Context(), w, http.StatusInternalServerError, err)
		return
	}

	out := make([]appointmentDTO, 0, len(appointments))
	for _, appointment := range appointments {
		out = append(out, toAppointmentDTO(appointment))
	}

	writeJSON(w, http.StatusOK, map[string]any{"appointments": out})
}

func toAppointmentDTO(a domain.Appointment) appointmentDTO {
	return appointmentDTO{
		ID:          a.ID,
		LocationID:  a.LocationID,
		BarberID:    a.BarberID,
		ClientName:  a.ClientName,
		ClientEmail: a.ClientEmail,
		Date:        a.Date.Format("2006-01-02"),
		StartTime:   a.StartTime,
		Services:    a.ServiceIDs(),
		CreatedAt:   a.CreatedAt.Format(time.RFC3339),
	}
}
