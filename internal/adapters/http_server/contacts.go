package httpserver

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"hotel_residents/internal/domain"
)

type createContactRequest struct {
	ResidentID *int64  `json:"id" validate:"required"`
	Surname    *string `json:"surname" validate:"required"`
	Name       *string `json:"name" validate:"required"`
	Number     *string `json:"number" validate:"required"`
	Email      *string `json:"email" validate:"required"`
}

type residentContactRequest struct {
	Number *string `json:"number" validate:"required"`
	Email  *string `json:"email" validate:"required"`
}

func (h *Handlers) listContacts(w http.ResponseWriter, r *http.Request) {
	cs, err := h.Contacts.All(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("list contacts failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"contacts": cs})
}

// createContact stores a contact that is not tied to a known resident.
func (h *Handlers) createContact(w http.ResponseWriter, r *http.Request) {
	var req createContactRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.Contacts.Create(r.Context(), domain.Contact{
		ResidentID: *req.ResidentID,
		Surname:    *req.Surname,
		Name:       *req.Name,
		Number:     *req.Number,
		Email:      *req.Email,
	})
	if err != nil {
		log.Error().Err(err).Msg("create contact failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, c)
}

func (h *Handlers) listResidentsWithContacts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"residents_with_contacts": h.Overview.ResidentsWithContacts(r.Context()),
	})
}

func (h *Handlers) getResidentContacts(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if _, found := h.Hotel.Resident(id); !found {
		writeProblem(w, http.StatusNotFound, "Not Found", "resident not found")
		return
	}
	cs, err := h.Contacts.ForResident(r.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			writeProblem(w, http.StatusNotFound, "Not Found", "ID not found in contacts")
			return
		}
		log.Error().Err(err).Int64("resident_id", id).Msg("contact lookup failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"id": id, "contacts": cs})
}

// addResidentContact copies the resident's name and surname into the new contact.
func (h *Handlers) addResidentContact(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, found := h.Hotel.Resident(id)
	if !found {
		writeProblem(w, http.StatusNotFound, "Not Found", "resident not found")
		return
	}
	var req residentContactRequest
	if !decode(w, r, &req) {
		return
	}
	c, err := h.Contacts.Create(r.Context(), domain.Contact{
		ResidentID: res.ID,
		Name:       res.Name,
		Surname:    res.Surname,
		Number:     *req.Number,
		Email:      *req.Email,
	})
	if err != nil {
		log.Error().Err(err).Int64("resident_id", id).Msg("create contact failed")
		writeProblem(w, http.StatusInternalServerError, "Upstream Failure", err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"message": "Contact added successfully", "contact": c})
}
