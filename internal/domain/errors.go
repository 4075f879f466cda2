package domain

import "errors"

var (
	// ErrNotFound is returned by contact directories when nothing is stored for a key.
	ErrNotFound = errors.New("not found")

	ErrRoomNotFound     = errors.New("room not found")
	ErrResidentNotFound = errors.New("resident not found")
	ErrRoomFull         = errors.New("room is already full")
	ErrRoomOccupied     = errors.New("room is occupied")
	ErrAlreadyInRoom    = errors.New("resident is already in the room")
)
