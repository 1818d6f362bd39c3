package room

import (
	"context"
	"errors"
	"time"
)

// UpcomingBookingChecker reports whether a room still has active bookings
// with a check-in at or after the given time. Implemented by the booking
// repository and wired in by the application container; declared here so the
// registry does not depend on the booking package.
type UpcomingBookingChecker interface {
	HasUpcomingBookings(ctx context.Context, roomID string, from time.Time) (bool, error)
}

type CreateRequest struct {
	RoomNumber    int
	RoomType      string
	PricePerNight float64
	Capacity      int
	Status        string // optional, defaults to Available
}

type UpdateRequest struct {
	RoomNumber    *int
	RoomType      *string
	PricePerNight *float64
	Capacity      *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Room, error)
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context, filter Filter) ([]*Room, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Room, error)
	SetStatus(ctx context.Context, id string, status string) (*Room, error)
	AddImages(ctx context.Context, id string, urls []string) (*Room, error)
}

type service struct {
	repo     Repository
	bookings UpcomingBookingChecker
}

func NewService(repo Repository, bookings UpcomingBookingChecker) Service {
	return &service{
		repo:     repo,
		bookings: bookings,
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Room, error) {
	if req.RoomNumber <= 0 {
		return nil, ErrInvalidNumber
	}

	roomType, err := ParseType(req.RoomType)
	if err != nil {
		return nil, err
	}

	if req.PricePerNight < 0 {
		return nil, ErrInvalidPrice
	}
	if req.Capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	status := StatusAvailable
	if req.Status != "" {
		if status, err = ParseStatus(req.Status); err != nil {
			return nil, err
		}
	}

	// Fast duplicate check for a friendly error; the unique index on
	// room_number is the authoritative guard.
	if _, err := s.repo.GetByNumber(ctx, req.RoomNumber); err == nil {
		return nil, ErrNumberTaken
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	rm := &Room{
		RoomNumber:    req.RoomNumber,
		RoomType:      roomType,
		PricePerNight: req.PricePerNight,
		Capacity:      req.Capacity,
		Status:        status,
	}

	if err := s.repo.Create(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Room, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Room, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Room, error) {
	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.RoomNumber != nil {
		if *req.RoomNumber <= 0 {
			return nil, ErrInvalidNumber
		}
		rm.RoomNumber = *req.RoomNumber
	}
	if req.RoomType != nil {
		roomType, err := ParseType(*req.RoomType)
		if err != nil {
			return nil, err
		}
		rm.RoomType = roomType
	}
	if req.PricePerNight != nil {
		if *req.PricePerNight < 0 {
			return nil, ErrInvalidPrice
		}
		rm.PricePerNight = *req.PricePerNight
	}
	if req.Capacity != nil {
		if *req.Capacity < 1 {
			return nil, ErrInvalidCapacity
		}
		rm.Capacity = *req.Capacity
	}

	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

// SetStatus changes the room lifecycle state. Taking a room out of service is
// refused while any active booking with a future check-in exists for it.
func (s *service) SetStatus(ctx context.Context, id string, status string) (*Room, error) {
	newStatus, err := ParseStatus(status)
	if err != nil {
		return nil, err
	}

	rm, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if newStatus != StatusAvailable {
		busy, err := s.bookings.HasUpcomingBookings(ctx, rm.ID, time.Now().UTC())
		if err != nil {
			return nil, err
		}
		if busy {
			return nil, ErrUpcomingBookings
		}
	}

	rm.Status = newStatus
	if err := s.repo.Update(ctx, rm); err != nil {
		return nil, err
	}
	return rm, nil
}

func (s *service) AddImages(ctx context.Context, id string, urls []string) (*Room, error) {
	return s.repo.AddImages(ctx, id, urls)
}
