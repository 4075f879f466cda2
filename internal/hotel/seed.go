package hotel

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"hotel_residents/internal/domain"
)

// Seed describes the initial state loaded at startup.
//
//	rooms:
//	  - name: Sea view
//	    price: 120
//	    size: 2
//	    residents:
//	      - name: Ada
//	        surname: Lovelace
//	        contacts:
//	          - number: "+44 20 0000 0000"
//	            email: ada@example.com
type Seed struct {
	Rooms []SeedRoom `yaml:"rooms"`
}

type SeedRoom struct {
	Name      string         `yaml:"name"`
	Price     float64        `yaml:"price"`
	Size      int            `yaml:"size"`
	Residents []SeedResident `yaml:"residents"`
}

type SeedResident struct {
	Name     string        `yaml:"name"`
	Surname  string        `yaml:"surname"`
	Contacts []SeedContact `yaml:"contacts"`
}

type SeedContact struct {
	Number string `yaml:"number"`
	Email  string `yaml:"email"`
}

func LoadSeed(path string) (Seed, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("read seed %s: %w", path, err)
	}
	var s Seed
	if err := yaml.Unmarshal(b, &s); err != nil {
		return Seed{}, fmt.Errorf("parse seed %s: %w", path, err)
	}
	for i, r := range s.Rooms {
		if r.Name == "" || r.Size <= 0 {
			return Seed{}, fmt.Errorf("seed room #%d: name and a positive size are required", i+1)
		}
	}
	return s, nil
}

// Apply creates the seeded rooms and residents. Contacts are registered in dir
// when it is non-nil. It stops at the first failure.
func (m *Model) Apply(ctx context.Context, s Seed, dir domain.ContactDirectory) error {
	for _, sr := range s.Rooms {
		room := m.CreateRoom(sr.Name, sr.Price, sr.Size)
		for _, sres := range sr.Residents {
			res, err := m.MoveInNewResident(sres.Name, sres.Surname, room.ID)
			if err != nil {
				return fmt.Errorf("seed %s %s into %q: %w", sres.Name, sres.Surname, sr.Name, err)
			}
			if dir == nil {
				continue
			}
			for _, sc := range sres.Contacts {
				c := domain.Contact{
					ResidentID: res.ID,
					Name:       res.Name,
					Surname:    res.Surname,
					Number:     sc.Number,
					Email:      sc.Email,
				}
				if _, err := dir.CreateContact(ctx, c); err != nil {
					return fmt.Errorf("seed contact for resident %d: %w", res.ID, err)
				}
			}
		}
	}
	return nil
}
