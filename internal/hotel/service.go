package hotel

import (
	"context"
	"strings"

	"github.com/quickstay/hotel-booking-backend/internal/user"
)

type RegisterRequest struct {
	OwnerID       string
	Name          string
	Address       string
	City          string
	Contact       string
	PricePerNight int64
}

// Service exposes hotel operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*Hotel, error)
	GetByID(ctx context.Context, id string) (*Hotel, error)
	GetByOwner(ctx context.Context, ownerID string) (*Hotel, error)
	List(ctx context.Context) ([]*Hotel, error)
}

type service struct {
	repo  Repository
	users user.Service
}

func NewService(repo Repository, users user.Service) Service {
	return &service{
		repo:  repo,
		users: users,
	}
}

// Register lists a new hotel for the owner and promotes them to hotel_owner.
func (s *service) Register(ctx context.Context, req RegisterRequest) (*Hotel, error) {
	if strings.TrimSpace(req.Name) == "" ||
		strings.TrimSpace(req.Address) == "" ||
		strings.TrimSpace(req.City) == "" ||
		strings.TrimSpace(req.Contact) == "" {
		return nil, ErrFieldsRequired
	}
	if req.PricePerNight <= 0 {
		return nil, ErrInvalidPrice
	}

	h := &Hotel{
		OwnerID:       req.OwnerID,
		Name:          req.Name,
		Address:       req.Address,
		City:          req.City,
		Contact:       req.Contact,
		PricePerNight: req.PricePerNight,
	}

	if err := s.repo.Create(ctx, h); err != nil {
		return nil, err
	}

	if err := s.users.PromoteToHotelOwner(ctx, req.OwnerID); err != nil {
		return nil, err
	}

	return h, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Hotel, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) GetByOwner(ctx context.Context, ownerID string) (*Hotel, error) {
	return s.repo.GetByOwner(ctx, ownerID)
}

func (s *service) List(ctx context.Context) ([]*Hotel, error) {
	return s.repo.List(ctx)
}
