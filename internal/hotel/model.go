// Package hotel holds the in-memory hotel model: rooms, residents and the
// occupancy rules between them.
package hotel

import (
	"slices"
	"sync"

	"hotel_residents/internal/domain"
)

// Model owns every room and resident. All methods are safe for concurrent use;
// reads return copies, so callers never see later mutations.
type Model struct {
	mu sync.RWMutex

	rooms     map[int64]*domain.Room
	roomIDs   []int64 // creation order
	residents map[int64]*domain.Resident
	resIDs    []int64 // move-in order

	nextRoomID     int64
	nextResidentID int64
}

func New() *Model {
	return &Model{
		rooms:     make(map[int64]*domain.Room),
		residents: make(map[int64]*domain.Resident),
	}
}

func (m *Model) CreateRoom(name string, price float64, size int) domain.Room {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextRoomID++
	r := &domain.Room{ID: m.nextRoomID, Name: name, Price: price, Size: size, Occupants: []int64{}}
	m.rooms[r.ID] = r
	m.roomIDs = append(m.roomIDs, r.ID)
	return copyRoom(r)
}

// UpdateRoom replaces name, price and size of an empty room.
func (m *Model) UpdateRoom(id int64, name string, price float64, size int) (domain.Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, domain.ErrRoomNotFound
	}
	if len(r.Occupants) > 0 {
		return domain.Room{}, domain.ErrRoomOccupied
	}
	r.Name, r.Price, r.Size = name, price, size
	return copyRoom(r), nil
}

// RemoveRoom deletes the room together with everyone living in it and returns
// the ids of the removed residents.
func (m *Model) RemoveRoom(id int64) ([]int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	removed := slices.Clone(r.Occupants)
	for _, rid := range removed {
		m.dropResident(rid)
	}
	delete(m.rooms, id)
	m.roomIDs = without(m.roomIDs, id)
	return removed, nil
}

func (m *Model) MoveInNewResident(name, surname string, roomID int64) (domain.Resident, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rooms[roomID]
	if !ok {
		return domain.Resident{}, domain.ErrRoomNotFound
	}
	if r.Free() <= 0 {
		return domain.Resident{}, domain.ErrRoomFull
	}

	m.nextResidentID++
	res := &domain.Resident{ID: m.nextResidentID, Name: name, Surname: surname, RoomID: ptr(roomID)}
	m.residents[res.ID] = res
	m.resIDs = append(m.resIDs, res.ID)
	r.Occupants = append(r.Occupants, res.ID)
	return copyResident(res), nil
}

// MoveResidentIntoRoom relocates a resident, leaving the previous room (if any).
func (m *Model) MoveResidentIntoRoom(residentID, roomID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	res, ok := m.residents[residentID]
	if !ok {
		return domain.ErrResidentNotFound
	}
	dst, ok := m.rooms[roomID]
	if !ok {
		return domain.ErrRoomNotFound
	}
	if res.RoomID != nil && *res.RoomID == roomID {
		return domain.ErrAlreadyInRoom
	}
	if dst.Free() <= 0 {
		return domain.ErrRoomFull
	}

	if res.RoomID != nil {
		if src, ok := m.rooms[*res.RoomID]; ok {
			src.Occupants = without(src.Occupants, residentID)
		}
	}
	dst.Occupants = append(dst.Occupants, residentID)
	res.RoomID = ptr(roomID)
	return nil
}

// RemoveResidentFromRoom removes the resident from the hotel entirely.
func (m *Model) RemoveResidentFromRoom(residentID int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.residents[residentID]; !ok {
		return domain.ErrResidentNotFound
	}
	m.dropResident(residentID)
	return nil
}

// dropResident must be called with mu held.
func (m *Model) dropResident(id int64) {
	res, ok := m.residents[id]
	if !ok {
		return
	}
	if res.RoomID != nil {
		if r, ok := m.rooms[*res.RoomID]; ok {
			r.Occupants = without(r.Occupants, id)
		}
	}
	delete(m.residents, id)
	m.resIDs = without(m.resIDs, id)
}

// ---- lookups ----

func (m *Model) Room(id int64) (domain.Room, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[id]
	if !ok {
		return domain.Room{}, false
	}
	return copyRoom(r), true
}

func (m *Model) RoomName(id int64) (string, bool) {
	r, ok := m.Room(id)
	return r.Name, ok
}

func (m *Model) Resident(id int64) (domain.Resident, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	res, ok := m.residents[id]
	if !ok {
		return domain.Resident{}, false
	}
	return copyResident(res), true
}

func (m *Model) Rooms() []domain.Room {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Room, 0, len(m.roomIDs))
	for _, id := range m.roomIDs {
		out = append(out, copyRoom(m.rooms[id]))
	}
	return out
}

func (m *Model) Residents() []domain.Resident {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Resident, 0, len(m.resIDs))
	for _, id := range m.resIDs {
		out = append(out, copyResident(m.residents[id]))
	}
	return out
}

// Occupants returns the residents of a room in move-in order.
func (m *Model) Occupants(roomID int64) ([]domain.Resident, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.rooms[roomID]
	if !ok {
		return nil, false
	}
	out := make([]domain.Resident, 0, len(r.Occupants))
	for _, id := range r.Occupants {
		out = append(out, copyResident(m.residents[id]))
	}
	return out, true
}

func (m *Model) Stats() domain.HotelStats {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := domain.HotelStats{Rooms: len(m.rooms), Residents: len(m.residents)}
	for _, r := range m.rooms {
		st.Beds += r.Size
		st.Occupied += len(r.Occupants)
	}
	return st
}

// ---- helpers ----

func copyRoom(r *domain.Room) domain.Room {
	c := *r
	c.Occupants = slices.Clone(r.Occupants)
	if c.Occupants == nil {
		c.Occupants = []int64{}
	}
	return c
}

func copyResident(r *domain.Resident) domain.Resident {
	c := *r
	if r.RoomID != nil {
		c.RoomID = ptr(*r.RoomID)
	}
	return c
}

func without(ids []int64, id int64) []int64 {
	return slices.DeleteFunc(ids, func(x int64) bool { return x == id })
}

func ptr[T any](v T) *T { return &v }
