package domain

type Room struct {
	ID        int64   `json:"id"`
	Name      string  `json:"room_name"`
	Price     float64 `json:"price"`
	Size      int     `json:"size"`
	Occupants []int64 `json:"occupants"` // resident ids, move-in order
}

// Free reports the number of beds still available.
func (r Room) Free() int { return r.Size - len(r.Occupants) }

type Resident struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Surname string `json:"surname"`
	RoomID  *int64 `json:"room_id"` // nil when the resident has no room
}

// HotelStats is a point-in-time summary of the model, used by metrics.
type HotelStats struct {
	Rooms     int
	Residents int
	Beds      int
	Occupied  int
}
