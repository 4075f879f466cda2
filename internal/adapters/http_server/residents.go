package httpserver

import (
	"net/http"

	"github.com/rs/zerolog/log"
)

type addResidentRequest struct {
	Name    *string `json:"name" validate:"required"`
	Surname *string `json:"surname" validate:"required"`
	RoomID  *int64  `json:"room_id" validate:"required"`
}

type moveResidentRequest struct {
	RoomID *int64 `json:"new_room_id" validate:"required"`
}

func (h *Handlers) listResidents(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"residents": h.Hotel.Residents()})
}

func (h *Handlers) getResident(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	res, found := h.Hotel.Resident(id)
	if !found {
		writeProblem(w, http.StatusNotFound, "Not Found", "resident not found")
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *Handlers) addResident(w http.ResponseWriter, r *http.Request) {
	var req addResidentRequest
	if !decode(w, r, &req) {
		return
	}
	res, err := h.Hotel.MoveInNewResident(*req.Name, *req.Surname, *req.RoomID)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	log.Info().Int64("resident_id", res.ID).Int64("room_id", *req.RoomID).Msg("resident moved in")
	writeJSON(w, http.StatusCreated, map[string]any{
		"message":  "Resident added to room successfully",
		"resident": res,
	})
}

func (h *Handlers) moveResident(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req moveResidentRequest
	if !decode(w, r, &req) {
		return
	}
	if err := h.Hotel.MoveResidentIntoRoom(id, *req.RoomID); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Resident moved to new room successfully"})
}

func (h *Handlers) removeResident(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	if err := h.Hotel.RemoveResidentFromRoom(id); err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, message{Message: "Resident removed from room successfully"})
}
