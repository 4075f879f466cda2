package app

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"hotel_residents/internal/domain"
)

const (
	MsgContactNotAdded     = "Contact not added"
	MsgNoContactsSpecified = "No contacts specified"
)

// HotelReader is the read side of the hotel model.
type HotelReader interface {
	Rooms() []domain.Room
	Residents() []domain.Resident
	Occupants(roomID int64) ([]domain.Resident, bool)
}

// OverviewService joins hotel state with contact records.
type OverviewService struct {
	hotel    HotelReader
	contacts *ContactService
	workers  int64
}

func NewOverviewService(h HotelReader, c *ContactService, workers int) *OverviewService {
	if workers <= 0 {
		workers = 4
	}
	return &OverviewService{hotel: h, contacts: c, workers: int64(workers)}
}

// Hotel returns every room with its residents and their contacts.
func (s *OverviewService) Hotel(ctx context.Context) []domain.RoomView {
	rooms := s.hotel.Rooms()
	out := make([]domain.RoomView, 0, len(rooms))
	var views []*domain.ResidentView
	for _, r := range rooms {
		rv := domain.RoomView{ID: r.ID, Name: r.Name, Price: r.Price, Size: r.Size}
		occ, _ := s.hotel.Occupants(r.ID)
		rv.Residents = make([]domain.ResidentView, len(occ))
		for i, res := range occ {
			rv.Residents[i] = domain.ResidentView{ID: res.ID, Name: res.Name, Surname: res.Surname}
		}
		out = append(out, rv)
	}
	// pointers are taken after out stops growing
	for i := range out {
		for j := range out[i].Residents {
			views = append(views, &out[i].Residents[j])
		}
	}
	s.fill(ctx, views, MsgContactNotAdded)
	return out
}

// ResidentsWithContacts lists every resident with their contacts.
func (s *OverviewService) ResidentsWithContacts(ctx context.Context) []domain.ResidentView {
	residents := s.hotel.Residents()
	out := make([]domain.ResidentView, len(residents))
	views := make([]*domain.ResidentView, len(residents))
	for i, res := range residents {
		out[i] = domain.ResidentView{ID: res.ID, Name: res.Name, Surname: res.Surname}
		views[i] = &out[i]
	}
	s.fill(ctx, views, MsgNoContactsSpecified)
	return out
}

// fill looks contacts up concurrently, at most s.workers at a time. A failed
// lookup leaves Contacts empty and sets Error to missMsg.
func (s *OverviewService) fill(ctx context.Context, views []*domain.ResidentView, missMsg string) {
	sem := semaphore.NewWeighted(s.workers)
	var wg sync.WaitGroup

	for _, v := range views {
		v.Contacts = []domain.Contact{}
		if err := sem.Acquire(ctx, 1); err != nil {
			v.Error = missMsg
			continue
		}
		wg.Add(1)
		go func(v *domain.ResidentView) {
			defer wg.Done()
			defer sem.Release(1)

			cs, err := s.contacts.ForResident(ctx, v.ID)
			if err != nil {
				log.Debug().Err(err).Int64("resident_id", v.ID).Msg("contact lookup failed")
				v.Error = missMsg
				return
			}
			v.Contacts = cs
		}(v)
	}
	wg.Wait()
}
