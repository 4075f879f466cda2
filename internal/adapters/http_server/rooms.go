package httpserver

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

type createRoomRequest struct {
	Name  *string  `json:"room_name" validate:"required"`
	Price *float64 `json:"price" validate:"required"`
	Size  *int     `json:"size" validate:"required,min=0"`
}

type updateRoomRequest struct {
	Name  *string  `json:"new_name" validate:"required"`
	Price *float64 `json:"new_price" validate:"required"`
	Size  *int     `json:"new_size" validate:"required,min=0"`
}

func (h *Handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rooms": h.Hotel.Rooms()})
}

func (h *Handlers) getRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	room, found := h.Hotel.Room(id)
	if !found {
		writeProblem(w, http.StatusNotFound, "Not Found", "room not found")
		return
	}
	writeJSON(w, http.StatusOK, room)
}

func (h *Handlers) createRoom(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if !decode(w, r, &req) {
		return
	}
	room := h.Hotel.CreateRoom(*req.Name, *req.Price, *req.Size)
	log.Info().Int64("room_id", room.ID).Int("size", room.Size).Msg("room created")
	writeJSON(w, http.StatusCreated, map[string]any{"message": "New room added", "room": room})
}

func (h *Handlers) updateRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	var req updateRoomRequest
	if !decode(w, r, &req) {
		return
	}
	room, err := h.Hotel.UpdateRoom(id, *req.Name, *req.Price, *req.Size)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"message": "Room updated successfully", "room": room})
}

func (h *Handlers) removeRoom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}
	removed, err := h.Hotel.RemoveRoom(id)
	if err != nil {
		writeDomainError(w, err)
		return
	}
	log.Info().Int64("room_id", id).Int("residents_removed", len(removed)).Msg("room removed")
	writeJSON(w, http.StatusOK, map[string]any{
		"message":           fmt.Sprintf("Room with ID %d and its residents removed successfully", id),
		"removed_residents": removed,
	})
}
