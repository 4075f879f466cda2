package app

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"hotel_residents/internal/domain"
)

// ContactService fronts a contact directory with an optional read-through cache.
//
// Resident ids restart at 1 with every process, so cache keys are scoped to
// the instance: contacts:{instance}:resident:{id} and contacts:{instance}:all.
type ContactService struct {
	dir      domain.ContactDirectory
	cache    domain.Cache
	cacheTTL time.Duration
	prefix   string
}

// NewContactService accepts a nil cache (or a zero ttl) to disable caching.
func NewContactService(d domain.ContactDirectory, c domain.Cache, ttl time.Duration) *ContactService {
	if ttl <= 0 {
		c = nil
	}
	return &ContactService{dir: d, cache: c, cacheTTL: ttl, prefix: "contacts:" + uuid.NewString()}
}

// CachePrefix is the key prefix of this instance's cache entries.
func (s *ContactService) CachePrefix() string { return s.prefix }

func (s *ContactService) residentKey(id int64) string {
	return fmt.Sprintf("%s:resident:%d", s.prefix, id)
}

func (s *ContactService) allKey() string { return s.prefix + ":all" }

func (s *ContactService) Create(ctx context.Context, c domain.Contact) (domain.Contact, error) {
	out, err := s.dir.CreateContact(ctx, c)
	if err != nil {
		return domain.Contact{}, fmt.Errorf("create contact for resident %d: %w", c.ResidentID, err)
	}
	if s.cache != nil {
		s.invalidate(ctx, s.residentKey(c.ResidentID))
		s.invalidate(ctx, s.allKey())
	}
	return out, nil
}

// ForResident returns domain.ErrNotFound (wrapped) when the directory has nothing
// for the resident. Misses are not cached.
func (s *ContactService) ForResident(ctx context.Context, residentID int64) ([]domain.Contact, error) {
	key := s.residentKey(residentID)
	if out, ok := s.cached(ctx, key); ok {
		return out, nil
	}
	out, err := s.dir.GetContacts(ctx, residentID)
	if err != nil {
		return nil, fmt.Errorf("contacts for resident %d: %w", residentID, err)
	}
	if out == nil {
		out = []domain.Contact{}
	}
	s.store(ctx, key, out)
	return out, nil
}

func (s *ContactService) All(ctx context.Context) ([]domain.Contact, error) {
	key := s.allKey()
	if out, ok := s.cached(ctx, key); ok {
		return out, nil
	}
	out, err := s.dir.GetAllContacts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	if out == nil {
		out = []domain.Contact{}
	}
	s.store(ctx, key, out)
	return out, nil
}

// cached reports a hit only for entries that decode cleanly; anything else
// falls through to the directory.
func (s *ContactService) cached(ctx context.Context, key string) ([]domain.Contact, bool) {
	if s.cache == nil {
		return nil, false
	}
	var out []domain.Contact
	ok, err := s.cache.Get(ctx, key, &out)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache get failed, reading directory")
		return nil, false
	}
	return out, ok
}

func (s *ContactService) store(ctx context.Context, key string, v []domain.Contact) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Set(ctx, key, v, int(s.cacheTTL.Seconds())); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
}

func (s *ContactService) invalidate(ctx context.Context, key string) {
	if err := s.cache.Del(ctx, key); err != nil {
		log.Warn().Err(err).Str("key", key).Msg("cache del failed")
	}
}
