package user

import (
	"context"
	"strings"
)

// Service exposes user operations to the rest of the system.
type Service interface {
	GetByID(ctx context.Context, id string) (*User, error)
	ResolveProviderID(ctx context.Context, providerID string) (*User, error)
	SyncFromProvider(ctx context.Context, u *User) error
	RemoveFromProvider(ctx context.Context, providerID string) error
	PromoteToHotelOwner(ctx context.Context, id string) error
	StoreRecentSearch(ctx context.Context, id, city string) ([]string, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

// ResolveProviderID maps an identity-provider subject onto the local user row.
func (s *service) ResolveProviderID(ctx context.Context, providerID string) (*User, error) {
	return s.repo.GetByProviderID(ctx, providerID)
}

// SyncFromProvider upserts the local mirror of a provider account. New
// accounts start as guests.
func (s *service) SyncFromProvider(ctx context.Context, u *User) error {
	if u.Role == "" {
		u.Role = RoleGuest
	}
	if !u.Role.IsValid() {
		return ErrInvalidRole
	}
	return s.repo.Upsert(ctx, u)
}

func (s *service) RemoveFromProvider(ctx context.Context, providerID string) error {
	return s.repo.DeleteByProviderID(ctx, providerID)
}

// PromoteToHotelOwner flips a guest to hotel_owner after hotel registration.
// Admins keep their role.
func (s *service) PromoteToHotelOwner(ctx context.Context, id string) error {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u.Role == RoleAdmin || u.Role == RoleHotelOwner {
		return nil
	}
	return s.repo.UpdateRole(ctx, id, RoleHotelOwner)
}

// StoreRecentSearch keeps the latest searched cities, most recent first,
// deduplicated and capped at maxRecentCities.
func (s *service) StoreRecentSearch(ctx context.Context, id, city string) ([]string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return nil, ErrCityRequired
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	cities := make([]string, 0, maxRecentCities)
	cities = append(cities, city)
	for _, c := range u.RecentSearchedCities {
		if c == city {
			continue
		}
		cities = append(cities, c)
		if len(cities) == maxRecentCities {
			break
		}
	}

	if err := s.repo.UpdateRecentCities(ctx, id, cities); err != nil {
		return nil, err
	}
	return cities, nil
}
