package room

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/quickstay/hotel-booking-backend/internal/hotel"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/errs"
	"github.com/quickstay/hotel-booking-backend/internal/pkg/storage"
)

// Image dimensions room photos are normalized to before storage.
const (
	imageMaxWidth  = 1600
	imageMaxHeight = 1200
)

type CreateRequest struct {
	OwnerID       string
	RoomType      string
	PricePerNight int64
	Amenities     []string
	Images        []io.Reader
}

// Service exposes room operations.
type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*Room, error)
	ToggleAvailability(ctx context.Context, ownerID, roomID string) (bool, error)
}

type service struct {
	repo      Repository
	hotels    hotel.Service
	media     storage.Storage
	processor *storage.ImageProcessor
}

func NewService(repo Repository, hotels hotel.Service, media storage.Storage, processor *storage.ImageProcessor) Service {
	return &service{
		repo:      repo,
		hotels:    hotels,
		media:     media,
		processor: processor,
	}
}

// Create lists a new room under the owner's hotel. Uploaded photos are
// normalized and pushed to the media store before the row is written.
func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if strings.TrimSpace(req.RoomType) == "" || req.PricePerNight <= 0 {
		return nil, ErrInvalidInput
	}
	if len(req.Images) == 0 {
		return nil, ErrImagesRequired
	}

	h, err := s.hotels.GetByOwner(ctx, req.OwnerID)
	if err != nil {
		return nil, ErrHotelRequired
	}

	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		normalized, err := s.processor.Normalize(img, imageMaxWidth, imageMaxHeight)
		if err != nil {
			return nil, ErrInvalidInput
		}

		path := fmt.Sprintf("rooms/%s.jpg", uuid.NewString())
		url, err := s.media.Save(ctx, path, normalized)
		if err != nil {
			return nil, errs.Wrap(err, "store room image failed")
		}
		urls = append(urls, url)
	}

	amenities := req.Amenities
	if amenities == nil {
		amenities = []string{}
	}

	rm := &Room{
		HotelID:       h.ID,
		RoomType:      req.RoomType,
		PricePerNight: req.PricePerNight,
		Amenities:     amenities,
		Images:        urls,
	}
	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}

	rm.HotelName = h.Name
	rm.HotelAddress = h.Address
	rm.HotelCity = h.City
	rm.HotelContact = h.Contact

	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) ListForOwner(ctx context.Context, ownerID string) ([]*Room, error) {
	h, err := s.hotels.GetByOwner(ctx, ownerID)
	if err != nil {
		return nil, ErrHotelRequired
	}
	return s.repo.ListByHotel(ctx, h.ID)
}

// ToggleAvailability flips the listing flag. Only the owning hotel may do so.
func (s *service) ToggleAvailability(ctx context.Context, ownerID, roomID string) (bool, error) {
	rm, err := s.repo.GetByID(ctx, roomID)
	if err != nil {
		return false, err
	}

	h, err := s.hotels.GetByOwner(ctx, ownerID)
	if err != nil || h.ID != rm.HotelID {
		return false, ErrNotRoomOwner
	}

	next := !rm.IsAvailable
	if err := s.repo.SetAvailability(ctx, roomID, next); err != nil {
		return false, err
	}
	return next, nil
}
