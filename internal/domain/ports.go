package domain

import "context"

type ContactDirectory interface {
	CreateContact(ctx context.Context, c Contact) (Contact, error)
	GetContacts(ctx context.Context, residentID int64) ([]Contact, error)
	GetAllContacts(ctx context.Context) ([]Contact, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}

// Read models served by the API.

type ResidentView struct {
	ID       int64     `json:"id"`
	Name     string    `json:"name"`
	Surname  string    `json:"surname"`
	Contacts []Contact `json:"contacts"`
	Error    string    `json:"error,omitempty"` // set when the contact lookup failed
}

type RoomView struct {
	ID        int64          `json:"id"`
	Name      string         `json:"room_name"`
	Price     float64        `json:"price"`
	Size      int            `json:"size"`
	Residents []ResidentView `json:"residents"`
}
