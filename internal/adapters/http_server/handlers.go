// internal/adapters/http_server/handlers.go
package httpserver

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"hotel_residents/internal/app"
	"hotel_residents/internal/domain"
	"hotel_residents/internal/hotel"
)

type Handlers struct {
	Hotel    *hotel.Model
	Contacts *app.ContactService
	Overview *app.OverviewService
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type message struct {
	Message string `json:"message"`
}

var validate = newValidator()

// newValidator reports field names as they appear in the JSON payload.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/", h.getHotel)

	s.mux.Route("/rooms", func(r chi.Router) {
		r.Get("/", h.listRooms)
		r.Post("/", h.createRoom)
		r.Get("/{id}", h.getRoom)
		r.Put("/{id}", h.updateRoom)
		r.Delete("/{id}", h.removeRoom)
	})

	s.mux.Route("/residents", func(r chi.Router) {
		r.Get("/", h.listResidents)
		r.Post("/", h.addResident)
		r.Get("/{id}", h.getResident)
		r.Put("/{id}", h.moveResident)
		r.Delete("/{id}", h.removeResident)
	})

	s.mux.Route("/contacts", func(r chi.Router) {
		r.Get("/", h.listContacts)
		r.Post("/", h.createContact)
		r.Get("/residents", h.listResidentsWithContacts)
		r.Get("/residents/{id}", h.getResidentContacts)
		r.Post("/residents/{id}", h.addResidentContact)
	})
}

func (h *Handlers) getHotel(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"hotel": h.Overview.Hotel(r.Context())})
}

// ---- helpers ----

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("marshal response failed")
		writeProblem(w, http.StatusInternalServerError, "Internal Server Error", "")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("write response body failed")
	}
}

// writeDomainError maps model and directory errors onto status codes.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRoomNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "room not found")
	case errors.Is(err, domain.ErrResidentNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "resident not found")
	case errors.Is(err, domain.ErrNotFound):
		writeProblem(w, http.StatusNotFound, "Not Found", "ID not found in contacts")
	case errors.Is(err, domain.ErrAlreadyInRoom), errors.Is(err, domain.ErrRoomOccupied):
		writeProblem(w, http.StatusConflict, "Conflict", err.Error())
	case errors.Is(err, domain.ErrRoomFull):
		writeProblem(w, http.StatusUnprocessableEntity, "Unprocessable Entity", err.Error())
	default:
		log.Error().Err(err).Msg("request failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", err.Error())
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid ID", "id must be a number")
		return 0, false
	}
	return id, true
}

// decode reads a JSON body into dst and checks its required fields.
func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid JSON", err.Error())
		return false
	}
	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			writeProblem(w, http.StatusBadRequest, "Invalid request", err.Error())
			return false
		}
		var missing, invalid []string
		for _, fe := range verrs {
			if fe.Tag() == "required" {
				missing = append(missing, fe.Field())
				continue
			}
			invalid = append(invalid, fmt.Sprintf("%s fails %s=%s", fe.Field(), fe.Tag(), fe.Param()))
		}
		if len(missing) > 0 {
			writeProblem(w, http.StatusBadRequest, "Missing required fields", strings.Join(missing, ", "))
			return false
		}
		writeProblem(w, http.StatusBadRequest, "Invalid field values", strings.Join(invalid, ", "))
		return false
	}
	return true
}
